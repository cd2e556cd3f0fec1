//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/dashboard"
	"github.com/lovedesignwork/skyrock-sub001/infras/kafka"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/infras/postgres"
	"github.com/lovedesignwork/skyrock-sub001/infras/redis"
	"github.com/lovedesignwork/skyrock-sub001/infras/stripe"
	"github.com/lovedesignwork/skyrock-sub001/shared/cache"
	"github.com/lovedesignwork/skyrock-sub001/transport/http"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/middleware"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/router"

	bookingRepository "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/repository"
	bookingService "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/service"
	catalogRepository "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/repository"
	catalogService "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/service"
	notificationService "github.com/lovedesignwork/skyrock-sub001/internal/domains/notification/service"
	paymentRepository "github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/repository"
	paymentService "github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/service"
	promoRepository "github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/repository"
	promoService "github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/service"
	syncService "github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/service"

	bookingHandler "github.com/lovedesignwork/skyrock-sub001/internal/handlers/booking"
	catalogHandler "github.com/lovedesignwork/skyrock-sub001/internal/handlers/catalog"
	paymentHandler "github.com/lovedesignwork/skyrock-sub001/internal/handlers/payment"
	syncHandler "github.com/lovedesignwork/skyrock-sub001/internal/handlers/sync"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.TxRunner), new(*postgres.Connection)),
	otel.New,
	redis.New,
	kafka.New,
	stripe.New,
	dashboard.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuth,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	catalogRepository.NewPackage,
	catalogRepository.NewAddon,
	catalogService.New,
)

var promoDomain = wire.NewSet(
	promoRepository.New,
	promoService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var syncDomain = wire.NewSet(
	syncService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	promoDomain,
	bookingDomain,
	notificationDomain,
	paymentDomain,
	syncDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	catalogHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	syncHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
