package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/repository"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	"github.com/lovedesignwork/skyrock-sub001/shared/timezone"
)

type Promo interface {
	GetUsableByCode(ctx context.Context, code string) (model.PromoCode, error)
	RedeemTx(ctx context.Context, tx *sqlx.Tx, promoID, bookingID string) error
}

type serviceImpl struct {
	repo repository.PromoCode
	otel otel.Otel
}

func New(repo repository.PromoCode, otel otel.Otel) Promo {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// GetUsableByCode looks up a promo code and checks that it is currently
// redeemable. Codes are matched case-insensitively.
func (s *serviceImpl) GetUsableByCode(ctx context.Context, code string) (res model.PromoCode, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUsableByCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToUpper(strings.TrimSpace(code)),
				Table:    model.TableName,
			},
		},
	}

	res, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo code")

		return res, fmt.Errorf("failed to get promo code: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("promo code not found") // nolint:wrapcheck
	}

	if !res.Usable(timezone.Now()) {
		return res, failure.InvalidArgument("promo code is not valid") // nolint:wrapcheck
	}

	return res, nil
}

// RedeemTx marks the promo code as used by the booking inside the caller's
// transaction, so the redemption commits or rolls back with the booking.
func (s *serviceImpl) RedeemTx(ctx context.Context, tx *sqlx.Tx, promoID, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RedeemTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.RedeemTx(ctx, tx, promoID, bookingID); err != nil {
		log.Error().Err(err).Msg("failed to redeem promo code")

		return fmt.Errorf("failed to redeem promo code: %w", err)
	}

	return nil
}
