package dto

import (
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/model"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
)

type CreateIntentResponse struct {
	BookingID       string `json:"booking_id"`
	Reference       string `json:"reference"`
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type RefundRequest struct {
	Amount int64  `json:"amount" validate:"required,min=1"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

type RefundResponse struct {
	RefundID            string `json:"refund_id"`
	BookingID           string `json:"booking_id"`
	Amount              int64  `json:"amount"`
	BookingStatus       string `json:"booking_status"`
	RemainingRefundable int64  `json:"remaining_refundable"`
}

type RefundHistoryResponse struct {
	ID       string `json:"id"`
	RefundID string `json:"refund_id"`
	Amount   int64  `json:"amount"`
	Reason   string `json:"reason,omitempty"`
	Actor    string `json:"actor"`
	gDto.Metadata
}

func (r *RefundHistoryResponse) FromModel(model model.RefundHistory) {
	r.ID = model.ID
	r.RefundID = model.RefundID
	r.Amount = model.Amount
	r.Reason = model.Reason
	r.Actor = model.Actor
	r.Metadata.FromModel(model.Metadata)
}
