package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lovedesignwork/skyrock-sub001/config"
	otelMocks "github.com/lovedesignwork/skyrock-sub001/infras/otel/mocks"
	postgresMocks "github.com/lovedesignwork/skyrock-sub001/infras/postgres/mocks"
	bookingMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/mocks"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/service"
	catalogMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/mocks"
	catalogModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model"
	promoMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/mocks"
	promoModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/model"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
)

const (
	testPackageID = "5f9c2f62-28dc-4b92-8f45-0b0c2a4a2f01"
	testAddonID   = "9a4bb8c7-6a57-4b3e-9d8a-3a6c8f2e4d02"
	testPromoID   = "1c7de9f0-4f7b-47d1-8f2e-6b1a9c3d5e03"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.ReferencePrefix = "SR"
	cfg.Booking.Currency = "thb"
	cfg.Booking.Pricing.PrivateTransferFee = 500
	cfg.Booking.Pricing.NonPlayerFee = 250

	return cfg
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		PackageID:    testPackageID,
		ActivityDate: "2025-07-01",
		TimeSlot:     "09:00",
		GuestCount:   2,
		Customer: dto.CustomerRequest{
			Name:             "Ari Tan",
			Email:            "ari@example.com",
			Phone:            "812345678",
			PhoneCountryCode: "+66",
		},
		Transport: dto.TransportRequest{Type: model.TransportTypePrivate, PrivatePassengers: 2},
		Addons:    []dto.AddonSelectionRequest{{AddonID: testAddonID, Quantity: 1}},
	}
}

func TestCreate(t *testing.T) {
	pkg := catalogModel.Package{ID: testPackageID, Name: "Skyline Rope Course", Price: 2950, Active: true}
	addons := []catalogModel.Addon{{ID: testAddonID, Name: "GoPro Rental", Price: 770, Active: true}}

	tests := []struct {
		name         string
		mutate       func(req *dto.CreateBookingRequest)
		promo        *promoModel.PromoCode
		wantTotal    int64
		wantDiscount int64
	}{
		{
			name:      "private transfer with one addon",
			mutate:    func(req *dto.CreateBookingRequest) {},
			wantTotal: 7170,
		},
		{
			name:         "ten percent promo applied",
			mutate:       func(req *dto.CreateBookingRequest) { req.PromoCode = "SKY10" },
			promo:        &promoModel.PromoCode{ID: testPromoID, Code: "SKY10", DiscountType: promoModel.DiscountTypePercentage, DiscountValue: 10, Active: true},
			wantTotal:    6453,
			wantDiscount: 717,
		},
		{
			name: "non playing companions add a fee",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Transport = dto.TransportRequest{Type: model.TransportTypeHotelPickup, NonPlayerCount: 2}
				req.Addons = nil
			},
			wantTotal: 6400,
		},
		{
			name: "oversized fixed promo floors at zero",
			mutate: func(req *dto.CreateBookingRequest) {
				req.PromoCode = "FREEBIE"
			},
			promo:        &promoModel.PromoCode{ID: testPromoID, Code: "FREEBIE", DiscountType: promoModel.DiscountTypeFixed, DiscountValue: 100000, Active: true},
			wantTotal:    0,
			wantDiscount: 7170,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)
			catalog := catalogMocks.NewMockCatalog(ctrl)
			promo := promoMocks.NewMockPromo(ctrl)
			svc := service.New(repo, catalog, promo, &postgresMocks.TxRunner{}, testConfig(), otelMocks.NewOtel())

			req := createRequest()
			tt.mutate(&req)

			catalog.EXPECT().GetPackage(gomock.Any(), testPackageID).Return(pkg, nil)

			if len(req.Addons) > 0 {
				catalog.EXPECT().GetAddonsByIDs(gomock.Any(), []string{testAddonID}).Return(addons, nil)
			} else {
				catalog.EXPECT().GetAddonsByIDs(gomock.Any(), []string{}).Return(nil, nil)
			}

			if tt.promo != nil {
				promo.EXPECT().GetUsableByCode(gomock.Any(), req.PromoCode).Return(*tt.promo, nil)
				promo.EXPECT().RedeemTx(gomock.Any(), gomock.Any(), tt.promo.ID, gomock.Any()).Return(nil)
			}

			repo.EXPECT().ReferenceExists(gomock.Any(), gomock.Any()).Return(false, nil)

			var created model.Aggregate

			repo.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, agg model.Aggregate) error {
					created = agg

					return nil
				})

			res, err := svc.Create(context.Background(), req)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalAmount)
			assert.Equal(t, tt.wantDiscount, res.DiscountAmount)
			assert.Equal(t, model.StatusPending, created.Booking.Status)
			assert.Equal(t, tt.wantTotal, created.Booking.TotalAmount)
			assert.Equal(t, "thb", created.Booking.Currency)
			assert.Regexp(t, `^SR-\d{6}$`, created.Booking.Reference)
			assert.Equal(t, created.Booking.ID, created.Customer.BookingID)
			assert.Equal(t, created.Booking.ID, created.Transport.BookingID)

			for _, line := range created.Addons {
				assert.Equal(t, created.Booking.ID, line.BookingID)
				assert.Equal(t, int64(770), line.UnitPrice)
			}
		})
	}
}

func TestCreatePackageNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	catalog := catalogMocks.NewMockCatalog(ctrl)
	promo := promoMocks.NewMockPromo(ctrl)
	svc := service.New(repo, catalog, promo, &postgresMocks.TxRunner{}, testConfig(), otelMocks.NewOtel())

	catalog.EXPECT().GetPackage(gomock.Any(), testPackageID).Return(catalogModel.Package{}, failure.NotFound("package not found"))

	_, err := svc.Create(context.Background(), createRequest())

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestGetByReference(t *testing.T) {
	confirmed := model.Booking{
		ID:        "booking-1",
		Reference: "SR-100001",
		Status:    model.StatusConfirmed,
	}
	pending := model.Booking{
		ID:              "booking-2",
		Reference:       "SR-100002",
		Status:          model.StatusPending,
		PaymentIntentID: sql.NullString{String: "pi_123", Valid: true},
	}

	tests := []struct {
		name     string
		booking  model.Booking
		proof    string
		wantCode int
	}{
		{name: "confirmed booking without proof", booking: confirmed, proof: ""},
		{name: "pending booking with matching intent", booking: pending, proof: "pi_123"},
		{name: "pending booking without proof", booking: pending, proof: "", wantCode: 404},
		{name: "pending booking with wrong proof", booking: pending, proof: "pi_999", wantCode: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)
			svc := service.New(repo, catalogMocks.NewMockCatalog(ctrl), promoMocks.NewMockPromo(ctrl), &postgresMocks.TxRunner{}, testConfig(), otelMocks.NewOtel())

			repo.EXPECT().GetByReference(gomock.Any(), tt.booking.Reference).Return(tt.booking, nil)

			if tt.wantCode == 0 {
				repo.EXPECT().GetAggregate(gomock.Any(), tt.booking.ID).Return(model.Aggregate{Booking: tt.booking}, nil)
			}

			res, err := svc.GetByReference(context.Background(), tt.booking.Reference, tt.proof)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.booking.Reference, res.Reference)
		})
	}
}

func TestTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(repo, catalogMocks.NewMockCatalog(ctrl), promoMocks.NewMockPromo(ctrl), &postgresMocks.TxRunner{}, testConfig(), otelMocks.NewOtel())

	repo.EXPECT().
		TransitionStatus(gomock.Any(), "booking-1", gomock.InAnyOrder([]string{model.StatusPending}), model.StatusConfirmed, "system").
		Return(true, nil)

	transitioned, err := svc.Transition(context.Background(), "booking-1", model.StatusConfirmed, "system")

	assert.NoError(t, err)
	assert.True(t, transitioned)
}
