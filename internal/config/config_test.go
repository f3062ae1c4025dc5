package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSale_Validate(t *testing.T) {
	tests := []struct {
		name       string
		sale       Sale
		wantPolicy string
		wantLength int
		wantErr    bool
	}{
		{
			name:       "Política vazia assume client",
			sale:       Sale{},
			wantPolicy: PricingPolicyClient,
			wantLength: 8,
		},
		{
			name:       "Política é normalizada",
			sale:       Sale{PricingPolicy: "  Catalog ", CodeLength: 10},
			wantPolicy: PricingPolicyCatalog,
			wantLength: 10,
		},
		{
			name:       "Política enforce é aceita",
			sale:       Sale{PricingPolicy: "enforce", CodeLength: 6},
			wantPolicy: PricingPolicyEnforce,
			wantLength: 6,
		},
		{
			name:    "Política desconhecida falha",
			sale:    Sale{PricingPolicy: "discount"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sale.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPolicy, tt.sale.PricingPolicy)
			assert.Equal(t, tt.wantLength, tt.sale.CodeLength)
		})
	}
}
