package validator_test

import (
	"strings"
	"testing"

	"github.com/lovedesignwork/skyrock-sub001/shared/validator"
)

type bookingTestStruct struct {
	Name       string `validate:"required"                                json:"name"`
	Email      string `validate:"required,email"                          json:"email"`
	GuestCount int    `validate:"gte=1,lte=40"                            json:"guest_count"`
	Transport  string `validate:"oneof=hotel_pickup self_arrange private" json:"transport"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        bookingTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: bookingTestStruct{
				Name:       "Ariya Wongs",
				Email:      "ariya@example.com",
				GuestCount: 4,
				Transport:  "hotel_pickup",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: bookingTestStruct{
				Email:      "ariya@example.com",
				GuestCount: 4,
				Transport:  "hotel_pickup",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: bookingTestStruct{
				Name:       "Ariya Wongs",
				Email:      "not-an-email",
				GuestCount: 4,
				Transport:  "hotel_pickup",
			},
			expectError: true,
		},
		{
			name: "guest count out of range",
			data: bookingTestStruct{
				Name:       "Ariya Wongs",
				Email:      "ariya@example.com",
				GuestCount: 41,
				Transport:  "hotel_pickup",
			},
			expectError: true,
		},
		{
			name: "invalid transport type",
			data: bookingTestStruct{
				Name:       "Ariya Wongs",
				Email:      "ariya@example.com",
				GuestCount: 4,
				Transport:  "teleport",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid JSON body", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Ariya Wongs","email":"ariya@example.com","guest_count":4,"transport":"private"}`)

		data := bookingTestStruct{}
		if err := validator.Validate(body, &data); err != nil {
			t.Errorf("expected no error, got: %v", err)
		}

		if data.GuestCount != 4 {
			t.Errorf("expected guest count 4, got %d", data.GuestCount)
		}
	})

	t.Run("malformed JSON body", func(t *testing.T) {
		body := strings.NewReader(`{"name":`)

		data := bookingTestStruct{}
		if err := validator.Validate(body, &data); err == nil {
			t.Error("expected decode error, got nil")
		}
	})

	t.Run("valid JSON failing validation", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Ariya Wongs","email":"ariya@example.com","guest_count":0,"transport":"private"}`)

		data := bookingTestStruct{}
		if err := validator.Validate(body, &data); err == nil {
			t.Error("expected validation error, got nil")
		}
	})
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "SR-483920",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid uuid",
			field:       "0d4f0c4e-3a84-4f3e-b9b7-57d2a1f6f111",
			tag:         "uuid",
			expectError: false,
		},
		{
			name:        "invalid uuid",
			field:       "not-a-uuid",
			tag:         "uuid",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
