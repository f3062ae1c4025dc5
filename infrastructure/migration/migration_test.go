package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
)

func TestSchemaDeclaraIndicesUnicos(t *testing.T) {
	assert.Contains(t, Schema, "salespersons_user_id_key ON salespersons (user_id)")
	assert.Contains(t, Schema, "sales_code_key ON sales (code)")
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, err error)
	}{
		{
			name: "Aplica o schema e confirma",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "Falha desfaz a transação",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
					WillReturnError(errors.New("permission denied"))
				mock.ExpectRollback()
			},
			validate: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "permission denied")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setup(mock)

			err = Apply(context.Background(), postgres.NewFromDB(db))

			tt.validate(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
