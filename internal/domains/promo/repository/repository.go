package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/infras/postgres"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/model"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/logger"
	gRepo "github.com/lovedesignwork/skyrock-sub001/shared/repository"
	"github.com/lovedesignwork/skyrock-sub001/shared/timezone"
)

type PromoCode interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PromoCode, error)
	RedeemTx(ctx context.Context, tx *sqlx.Tx, promoID, bookingID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PromoCode]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) PromoCode {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PromoCode](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// RedeemTx records a redemption of the promo code by the given booking and
// bumps the usage counter. The redemption row is unique per (promo, booking),
// so redelivered requests for the same booking increment the counter once.
// The counter bump happens inside SQL, never as read-then-write.
func (repo *repositoryImpl) RedeemTx(ctx context.Context, tx *sqlx.Tx, promoID, bookingID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promo_code.RedeemTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	insertQuery := fmt.Sprintf(
		"INSERT INTO %s (id, promo_code_id, booking_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (promo_code_id, booking_id) DO NOTHING",
		model.RedemptionTableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, insertQuery)

	result, err := tx.ExecContext(ctx, insertQuery, uuid.NewString(), promoID, bookingID, timezone.Now())
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to insert promo redemption: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read promo redemption result: %w", err)
	}

	if inserted == 0 {
		// Already redeemed by this booking, nothing to count.
		return nil
	}

	updateQuery := fmt.Sprintf("UPDATE %s SET used_count = used_count + 1 WHERE id = $1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, updateQuery)

	_, err = tx.ExecContext(ctx, updateQuery, promoID)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to increment promo usage: %w", err)
	}

	return nil
}
