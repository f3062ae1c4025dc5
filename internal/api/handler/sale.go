package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/selling"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sales-manager-api/pkg/log"
	"github.com/vfg2006/sales-manager-api/pkg/middleware"
)

// CreateSale registra uma venda com seus itens
func CreateSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body CreateSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Corpo da venda inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req, err := body.toDomain()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		sale, err := service.CreateSale(r.Context(), req)
		if err != nil {
			writeSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, sale)
	})
}

func ListSales(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sales, err := service.GetSales(r.Context())
		if err != nil {
			writeSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sales)
	})
}

func GetSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		saleID, ok := saleIDParam(w, r)
		if !ok {
			return
		}

		sale, err := service.GetSaleByID(r.Context(), saleID)
		if err != nil {
			writeSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	})
}

// UpdateSale altera apenas os campos de cabeçalho informados
func UpdateSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		saleID, ok := saleIDParam(w, r)
		if !ok {
			return
		}

		var patch domain.SalePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.UpdateSale(r.Context(), saleID, &patch)
		if err != nil {
			writeSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	})
}

func DeleteSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		saleID, ok := saleIDParam(w, r)
		if !ok {
			return
		}

		if err := service.DeleteSale(r.Context(), saleID); err != nil {
			writeSaleError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// ListMySales lista as vendas do usuário do token, criando o vendedor se preciso
func ListMySales(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		sales, err := service.GetSalesByCurrentUserID(r.Context(), strconv.Itoa(claims.UserID))
		if err != nil {
			writeSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sales)
	})
}

// ListSalesByUser lista as vendas de um usuário informado na rota
func ListSalesByUser(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		sales, err := service.GetSalesByCurrentUserID(r.Context(), userID)
		if err != nil {
			writeSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sales)
	})
}

func saleIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	saleID, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("id"))
	if err != nil || saleID <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da venda inválido", nil)
		return 0, false
	}
	return saleID, true
}

// writeSaleError traduz SaleError para a resposta padronizada
func writeSaleError(w http.ResponseWriter, err error) {
	var saleErr *selling.SaleError
	if !errors.As(err, &saleErr) {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar venda", nil)
		return
	}

	var details any
	if !saleErr.References.Empty() {
		details = saleErr.References
	}

	apiErrors.WriteError(w, saleErr.Code, saleErr.Err.Error(), details)
}
