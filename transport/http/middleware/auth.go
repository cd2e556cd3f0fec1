package middleware

import (
	"context"
	"net/http"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/response"
)

// Auth guards operator endpoints with an API key.
type Auth struct {
	cfg  *config.Config
	otel otel.Otel
}

func NewAuth(cfg *config.Config, otel otel.Otel) *Auth {
	return &Auth{
		cfg:  cfg,
		otel: otel,
	}
}

// APIKey validates the X-API-Key header for operator endpoints.
func (m *Auth) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == constant.Empty {
			err := failure.Unauthorized("missing API key")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if apiKey != m.cfg.App.APIKey {
			err := failure.Unauthorized("invalid API key")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyActor, constant.ActorOperator)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
