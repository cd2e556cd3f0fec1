package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/infras/postgres"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/repository"
	catalogModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model"
	catalogService "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/service"
	promoService "github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/service"
	"github.com/lovedesignwork/skyrock-sub001/shared"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	sharedModel "github.com/lovedesignwork/skyrock-sub001/shared/model"
	"github.com/lovedesignwork/skyrock-sub001/shared/timezone"
)

const maxReferenceAttempts = 5

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingDetailResponse, error)
	GetByReference(ctx context.Context, reference, proof string) (dto.BookingDetailResponse, error)
	GetByID(ctx context.Context, id string) (model.Booking, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (model.Booking, error)
	GetAggregate(ctx context.Context, bookingID string) (model.Aggregate, error)
	Transition(ctx context.Context, bookingID, to, actor string) (bool, error)
	SetPaymentReferences(ctx context.Context, bookingID, intentID, sessionID string) error
	UpdateSpecialRequests(ctx context.Context, bookingID, specialRequests, actor string) error
}

type serviceImpl struct {
	repo    repository.Booking
	catalog catalogService.Catalog
	promo   promoService.Promo
	db      postgres.TxRunner
	cfg     *config.Config
	otel    otel.Otel
}

func New(repo repository.Booking, catalog catalogService.Catalog, promo promoService.Promo, db postgres.TxRunner, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:    repo,
		catalog: catalog,
		promo:   promo,
		db:      db,
		cfg:     cfg,
		otel:    otel,
	}
}

// Create prices the request from the catalog, applies the promo code and
// persists the booking aggregate in pending status as one transaction.
// Addon unit prices are frozen onto the booking so later catalog changes
// never alter a historical total.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	pkg, err := s.catalog.GetPackage(ctx, req.PackageID)
	if err != nil {
		return res, fmt.Errorf("failed to resolve package: %w", err)
	}

	addonIDs := make([]string, len(req.Addons))
	for i, sel := range req.Addons {
		addonIDs[i] = sel.AddonID
	}

	addons, err := s.catalog.GetAddonsByIDs(ctx, addonIDs)
	if err != nil {
		return res, fmt.Errorf("failed to resolve addons: %w", err)
	}

	agg, err := s.buildAggregate(ctx, req, pkg, addons)
	if err != nil {
		return res, err
	}

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if txErr := s.repo.CreateTx(ctx, tx, agg); txErr != nil {
			return txErr
		}

		if agg.Booking.PromoCodeID.Valid {
			return s.promo.RedeemTx(ctx, tx, agg.Booking.PromoCodeID.String, agg.Booking.ID)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().
		Str("booking_id", agg.Booking.ID).
		Str("reference", agg.Booking.Reference).
		Int64("total_amount", agg.Booking.TotalAmount).
		Msg("booking created")

	res.FromAggregate(agg)

	return res, nil
}

func (s *serviceImpl) buildAggregate(ctx context.Context, req dto.CreateBookingRequest, pkg catalogModel.Package, addons []catalogModel.Addon) (agg model.Aggregate, err error) {
	bookingID := uuid.NewString()
	now := timezone.Now()
	meta := sharedModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: constant.ActorGuest, ModifiedBy: constant.ActorGuest}

	subtotal := pkg.Price * int64(req.GuestCount)

	priceByAddon := make(map[string]int64, len(addons))
	for _, addon := range addons {
		priceByAddon[addon.ID] = addon.Price
	}

	agg.Addons = make([]model.AddonLine, len(req.Addons))
	for i, sel := range req.Addons {
		unitPrice := priceByAddon[sel.AddonID]
		subtotal += unitPrice * int64(sel.Quantity)

		agg.Addons[i] = model.AddonLine{
			ID:        uuid.NewString(),
			BookingID: bookingID,
			AddonID:   sel.AddonID,
			Quantity:  sel.Quantity,
			UnitPrice: unitPrice,
			Metadata:  meta,
		}
	}

	var transportCost int64
	if req.Transport.Type == model.TransportTypePrivate {
		transportCost += s.cfg.Booking.Pricing.PrivateTransferFee
	}

	transportCost += s.cfg.Booking.Pricing.NonPlayerFee * int64(req.Transport.NonPlayerCount)
	subtotal += transportCost

	var discount int64

	var promoCodeID string

	if req.PromoCode != constant.Empty {
		promo, promoErr := s.promo.GetUsableByCode(ctx, req.PromoCode)
		if promoErr != nil {
			return agg, fmt.Errorf("failed to apply promo code: %w", promoErr)
		}

		discount = promo.Discount(subtotal)
		promoCodeID = promo.ID
	}

	total := subtotal - discount
	if total < 0 {
		return agg, failure.InvalidState("computed total is negative") // nolint:wrapcheck
	}

	reference, err := s.generateReference(ctx)
	if err != nil {
		return agg, err
	}

	agg.Booking = model.Booking{
		ID:              bookingID,
		Reference:       reference,
		PackageID:       pkg.ID,
		ActivityDate:    req.ParsedActivityDate(),
		TimeSlot:        req.TimeSlot,
		GuestCount:      req.GuestCount,
		Status:          model.StatusPending,
		TotalAmount:     total,
		DiscountAmount:  discount,
		Currency:        s.cfg.Booking.Currency,
		PromoCodeID:     dto.NullableString(promoCodeID),
		SpecialRequests: dto.NullableString(req.SpecialRequests),
		Metadata:        meta,
	}

	agg.Customer = model.Customer{
		ID:               uuid.NewString(),
		BookingID:        bookingID,
		Name:             req.Customer.Name,
		Email:            req.Customer.Email,
		Phone:            req.Customer.Phone,
		PhoneCountryCode: req.Customer.PhoneCountryCode,
		Metadata:         meta,
	}

	agg.Transport = model.Transport{
		ID:                uuid.NewString(),
		BookingID:         bookingID,
		Type:              req.Transport.Type,
		HotelName:         dto.NullableString(req.Transport.HotelName),
		RoomNumber:        dto.NullableString(req.Transport.RoomNumber),
		PrivatePassengers: req.Transport.PrivatePassengers,
		NonPlayerCount:    req.Transport.NonPlayerCount,
		Cost:              transportCost,
		Metadata:          meta,
	}

	return agg, nil
}

func (s *serviceImpl) generateReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference := shared.GenerateReference(s.cfg.Booking.ReferencePrefix)

		exists, err := s.repo.ReferenceExists(ctx, reference)
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to check booking reference: %w", err)
		}

		if !exists {
			return reference, nil
		}
	}

	return constant.Empty, failure.InternalError(errors.New("failed to generate a unique booking reference")) // nolint:wrapcheck
}

// GetByReference returns the booking for a guest-facing lookup. The caller
// must present the checkout session id or payment intent id as a possession
// proof, except for bookings already confirmed or completed, which stay
// reachable from a bare email link.
func (s *serviceImpl) GetByReference(ctx context.Context, reference, proof string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByReference")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by reference")

		return res, fmt.Errorf("failed to get booking by reference: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !s.lookupPermitted(booking, proof) {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	agg, err := s.repo.GetAggregate(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking aggregate")

		return res, fmt.Errorf("failed to get booking aggregate: %w", err)
	}

	res.FromAggregate(agg)

	return res, nil
}

func (s *serviceImpl) lookupPermitted(booking model.Booking, proof string) bool {
	if booking.Status == model.StatusConfirmed || booking.Status == model.StatusCompleted {
		return true
	}

	if proof == constant.Empty {
		return false
	}

	return proof == booking.PaymentIntentID.String || proof == booking.CheckoutSessionID.String
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetByPaymentIntentID(ctx context.Context, intentID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByPaymentIntentID")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by payment intent")

		return res, fmt.Errorf("failed to get booking by payment intent: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetAggregate(ctx context.Context, bookingID string) (agg model.Aggregate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAggregate")
	defer scope.End()
	defer scope.TraceIfError(err)

	agg, err = s.repo.GetAggregate(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking aggregate")

		return agg, fmt.Errorf("failed to get booking aggregate: %w", err)
	}

	if agg.Booking.ID == constant.Empty {
		return agg, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return agg, nil
}

// Transition moves the booking into the given status when the state machine
// allows it. It returns false without error when the booking is already in
// the target status, so redelivered events stay no-ops.
func (s *serviceImpl) Transition(ctx context.Context, bookingID, to, actor string) (transitioned bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	transitioned, err = s.repo.TransitionStatus(ctx, bookingID, model.SourcesFor(to), to, actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to transition booking status")

		return false, fmt.Errorf("failed to transition booking status: %w", err)
	}

	return transitioned, nil
}

func (s *serviceImpl) SetPaymentReferences(ctx context.Context, bookingID, intentID, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.SetPaymentReferences")
	defer scope.End()
	defer scope.TraceIfError(err)

	fields := map[string]any{
		"modified_at": timezone.Now(),
		"modified_by": constant.ActorSystem,
	}

	if intentID != constant.Empty {
		fields["payment_intent_id"] = intentID
	}

	if sessionID != constant.Empty {
		fields["checkout_session_id"] = sessionID
	}

	err = s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to set booking payment references")

		return fmt.Errorf("failed to set booking payment references: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpdateSpecialRequests(ctx context.Context, bookingID, specialRequests, actor string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateSpecialRequests")
	defer scope.End()
	defer scope.TraceIfError(err)

	fields := map[string]any{
		"special_requests": dto.NullableString(specialRequests),
		"modified_at":      timezone.Now(),
		"modified_by":      actor,
	}

	err = s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking special requests")

		return fmt.Errorf("failed to update booking special requests: %w", err)
	}

	return nil
}
