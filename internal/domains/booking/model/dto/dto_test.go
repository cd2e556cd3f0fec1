package dto_test

import (
	"testing"
	"time"

	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/validator"
)

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		PackageID:    "0d4f0c4e-3a84-4f3e-b9b7-57d2a1f6f111",
		ActivityDate: "2026-09-15",
		TimeSlot:     "09:00",
		GuestCount:   2,
		Customer: dto.CustomerRequest{
			Name:             "Ariya Wongs",
			Email:            "ariya@example.com",
			Phone:            "812345678",
			PhoneCountryCode: "+66",
		},
		Transport: dto.TransportRequest{
			Type: model.TransportTypeSelfArrange,
		},
	}
}

func TestCreateBookingRequestValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(req *dto.CreateBookingRequest)
		expectError bool
	}{
		{
			name:        "valid request",
			mutate:      func(req *dto.CreateBookingRequest) {},
			expectError: false,
		},
		{
			name: "missing package id",
			mutate: func(req *dto.CreateBookingRequest) {
				req.PackageID = ""
			},
			expectError: true,
		},
		{
			name: "package id is not a uuid",
			mutate: func(req *dto.CreateBookingRequest) {
				req.PackageID = "pkg-1"
			},
			expectError: true,
		},
		{
			name: "activity date not ISO formatted",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ActivityDate = "15/09/2026"
			},
			expectError: true,
		},
		{
			name: "zero guests",
			mutate: func(req *dto.CreateBookingRequest) {
				req.GuestCount = 0
			},
			expectError: true,
		},
		{
			name: "invalid customer email",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Customer.Email = "nope"
			},
			expectError: true,
		},
		{
			name: "unknown transport type",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Transport.Type = "submarine"
			},
			expectError: true,
		},
		{
			name: "addon without quantity",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Addons = []dto.AddonSelectionRequest{
					{AddonID: "3f1c8a2b-9d64-4c1e-8a7f-1b2c3d4e5f01"},
				}
			},
			expectError: true,
		},
		{
			name: "valid addon selection",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Addons = []dto.AddonSelectionRequest{
					{AddonID: "3f1c8a2b-9d64-4c1e-8a7f-1b2c3d4e5f01", Quantity: 2},
				}
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestParsedActivityDate(t *testing.T) {
	req := validCreateRequest()

	parsed := req.ParsedActivityDate()
	expected := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	if !parsed.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, parsed)
	}
}

func TestBookingDetailResponseFromAggregate(t *testing.T) {
	agg := model.Aggregate{
		Booking: model.Booking{
			ID:           "6b7a1c2d-5e8f-49a0-b1c2-d3e4f5a6b7c8",
			Reference:    "SR-483920",
			PackageID:    "0d4f0c4e-3a84-4f3e-b9b7-57d2a1f6f111",
			ActivityDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			TimeSlot:     "09:00",
			GuestCount:   2,
			Status:       model.StatusConfirmed,
			TotalAmount:  7170,
			Currency:     "thb",
			SpecialRequests: dto.NullableString("vegetarian lunch"),
		},
		Customer: model.Customer{
			Name:  "Ariya Wongs",
			Email: "ariya@example.com",
		},
		Transport: model.Transport{
			Type:      model.TransportTypeHotelPickup,
			HotelName: dto.NullableString("Patong Resort"),
		},
		Addons: []model.AddonLine{
			{AddonID: "3f1c8a2b-9d64-4c1e-8a7f-1b2c3d4e5f01", Quantity: 2, UnitPrice: 600},
		},
	}

	res := dto.BookingDetailResponse{}
	res.FromAggregate(agg)

	if res.Reference != "SR-483920" {
		t.Errorf("expected reference SR-483920, got %s", res.Reference)
	}

	if res.ActivityDate != "2026-09-15" {
		t.Errorf("expected activity date 2026-09-15, got %s", res.ActivityDate)
	}

	if res.SpecialRequests != "vegetarian lunch" {
		t.Errorf("expected special requests to carry over, got %q", res.SpecialRequests)
	}

	if res.Transport.HotelName != "Patong Resort" {
		t.Errorf("expected hotel name to carry over, got %q", res.Transport.HotelName)
	}

	if len(res.Addons) != 1 || res.Addons[0].Quantity != 2 {
		t.Errorf("expected one addon line with quantity 2, got %+v", res.Addons)
	}
}
