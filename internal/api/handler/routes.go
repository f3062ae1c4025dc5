package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-manager-api/internal/api/handler/router"
	"github.com/vfg2006/sales-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-manager-api/internal/usecases/selling"
	"github.com/vfg2006/sales-manager-api/pkg/log"
	"github.com/vfg2006/sales-manager-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Readers()},
		},
	}
}

func Sales(service selling.SaleService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Sellers()},
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Readers()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodGet,
			Handler:     GetSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Readers()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodPut,
			Handler:     UpdateSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Sellers()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/me/sales",
			Method:      http.MethodGet,
			Handler:     ListMySales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Sellers()},
		},
		{
			Path:        "/v1/users/:id/sales",
			Method:      http.MethodGet,
			Handler:     ListSalesByUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}
