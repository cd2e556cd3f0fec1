package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/kafka"
	bookingModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
)

// Notifier publishes booking notifications for the external email workers.
// Consumers render the actual templates, so redelivered events at worst
// produce a duplicate email, never an inconsistent booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, agg bookingModel.Aggregate) error
	AdminBookingNotification(ctx context.Context, agg bookingModel.Aggregate) error
}

type bookingEmailMessage struct {
	BookingID     string `json:"booking_id"`
	Reference     string `json:"reference"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ActivityDate  string `json:"activity_date"`
	TimeSlot      string `json:"time_slot"`
	GuestCount    int    `json:"guest_count"`
	TotalAmount   int64  `json:"total_amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
}

func newBookingEmailMessage(agg bookingModel.Aggregate) bookingEmailMessage {
	return bookingEmailMessage{
		BookingID:     agg.Booking.ID,
		Reference:     agg.Booking.Reference,
		CustomerName:  agg.Customer.Name,
		CustomerEmail: agg.Customer.Email,
		ActivityDate:  agg.Booking.ActivityDate.Format("2006-01-02"),
		TimeSlot:      agg.Booking.TimeSlot,
		GuestCount:    agg.Booking.GuestCount,
		TotalAmount:   agg.Booking.TotalAmount,
		Currency:      agg.Booking.Currency,
		Status:        agg.Booking.Status,
	}
}

type notifierImpl struct {
	producer kafka.Client
	cfg      *config.Config
}

func New(producer kafka.Client, cfg *config.Config) Notifier {
	return &notifierImpl{
		producer: producer,
		cfg:      cfg,
	}
}

func (n *notifierImpl) BookingConfirmed(ctx context.Context, agg bookingModel.Aggregate) error {
	return n.publish(ctx, n.cfg.Kafka.Topics.GuestConfirmation, agg)
}

func (n *notifierImpl) AdminBookingNotification(ctx context.Context, agg bookingModel.Aggregate) error {
	return n.publish(ctx, n.cfg.Kafka.Topics.AdminNotification, agg)
}

func (n *notifierImpl) publish(ctx context.Context, topic string, agg bookingModel.Aggregate) error {
	if !n.cfg.Kafka.Enable {
		log.Debug().Str("topic", topic).Str("reference", agg.Booking.Reference).Msg("kafka disabled, skipping notification")

		return nil
	}

	message := kafka.Message{
		Key:   agg.Booking.Reference,
		Value: newBookingEmailMessage(agg),
	}

	if err := n.producer.SendMessages(ctx, topic, message); err != nil {
		return fmt.Errorf("failed to publish booking notification: %w", err)
	}

	return nil
}
