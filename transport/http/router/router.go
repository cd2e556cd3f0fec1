package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/lovedesignwork/skyrock-sub001/internal/handlers/booking"
	"github.com/lovedesignwork/skyrock-sub001/internal/handlers/catalog"
	"github.com/lovedesignwork/skyrock-sub001/internal/handlers/payment"
	"github.com/lovedesignwork/skyrock-sub001/internal/handlers/sync"
)

type DomainHandlers struct {
	Catalog catalog.Handler
	Booking booking.Handler
	Payment payment.Handler
	Sync    sync.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Sync.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
