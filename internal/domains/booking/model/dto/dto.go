package dto

import (
	"database/sql"
	"time"

	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
)

const activityDateLayout = "2006-01-02"

type CustomerRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,max=32"`
	PhoneCountryCode string `json:"phone_country_code" validate:"required,max=8"`
}

type TransportRequest struct {
	Type              string `json:"type" validate:"required,oneof=hotel_pickup self_arrange private"`
	HotelName         string `json:"hotel_name" validate:"omitempty,max=255"`
	RoomNumber        string `json:"room_number" validate:"omitempty,max=32"`
	PrivatePassengers int    `json:"private_passengers" validate:"min=0"`
	NonPlayerCount    int    `json:"non_player_count" validate:"min=0"`
}

type AddonSelectionRequest struct {
	AddonID  string `json:"addon_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateBookingRequest struct {
	PackageID       string                  `json:"package_id" validate:"required,uuid"`
	ActivityDate    string                  `json:"activity_date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string                  `json:"time_slot" validate:"required,max=32"`
	GuestCount      int                     `json:"guest_count" validate:"required,min=1"`
	PromoCode       string                  `json:"promo_code" validate:"omitempty,max=64"`
	SpecialRequests string                  `json:"special_requests" validate:"omitempty,max=2000"`
	Customer        CustomerRequest         `json:"customer" validate:"required"`
	Transport       TransportRequest        `json:"transport" validate:"required"`
	Addons          []AddonSelectionRequest `json:"addons" validate:"omitempty,dive"`
}

// ParsedActivityDate returns the activity date as a time.Time. Call only
// after validation has accepted the request.
func (r *CreateBookingRequest) ParsedActivityDate() time.Time {
	parsed, _ := time.Parse(activityDateLayout, r.ActivityDate)

	return parsed
}

type CustomerResponse struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PhoneCountryCode string `json:"phone_country_code"`
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.PhoneCountryCode = model.PhoneCountryCode
}

type TransportResponse struct {
	Type              string `json:"type"`
	HotelName         string `json:"hotel_name,omitempty"`
	RoomNumber        string `json:"room_number,omitempty"`
	PrivatePassengers int    `json:"private_passengers"`
	NonPlayerCount    int    `json:"non_player_count"`
	Cost              int64  `json:"cost"`
}

func (r *TransportResponse) FromModel(model model.Transport) {
	r.Type = model.Type
	r.HotelName = model.HotelName.String
	r.RoomNumber = model.RoomNumber.String
	r.PrivatePassengers = model.PrivatePassengers
	r.NonPlayerCount = model.NonPlayerCount
	r.Cost = model.Cost
}

type AddonLineResponse struct {
	AddonID   string `json:"addon_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (r *AddonLineResponse) FromModel(model model.AddonLine) {
	r.AddonID = model.AddonID
	r.Quantity = model.Quantity
	r.UnitPrice = model.UnitPrice
}

type BookingResponse struct {
	ID              string `json:"id"`
	Reference       string `json:"reference"`
	PackageID       string `json:"package_id"`
	ActivityDate    string `json:"activity_date"`
	TimeSlot        string `json:"time_slot"`
	GuestCount      int    `json:"guest_count"`
	Status          string `json:"status"`
	TotalAmount     int64  `json:"total_amount"`
	DiscountAmount  int64  `json:"discount_amount"`
	Currency        string `json:"currency"`
	SpecialRequests string `json:"special_requests,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Reference = model.Reference
	r.PackageID = model.PackageID
	r.ActivityDate = model.ActivityDate.Format(activityDateLayout)
	r.TimeSlot = model.TimeSlot
	r.GuestCount = model.GuestCount
	r.Status = model.Status
	r.TotalAmount = model.TotalAmount
	r.DiscountAmount = model.DiscountAmount
	r.Currency = model.Currency
	r.SpecialRequests = model.SpecialRequests.String
	r.Metadata.FromModel(model.Metadata)
}

type BookingDetailResponse struct {
	BookingResponse
	Customer  CustomerResponse    `json:"customer"`
	Transport TransportResponse   `json:"transport"`
	Addons    []AddonLineResponse `json:"addons"`
}

func (r *BookingDetailResponse) FromAggregate(agg model.Aggregate) {
	r.BookingResponse.FromModel(agg.Booking)
	r.Customer.FromModel(agg.Customer)
	r.Transport.FromModel(agg.Transport)

	r.Addons = make([]AddonLineResponse, len(agg.Addons))
	for i, line := range agg.Addons {
		r.Addons[i].FromModel(line)
	}
}

// NullableString wraps a plain string for the optional columns.
func NullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
