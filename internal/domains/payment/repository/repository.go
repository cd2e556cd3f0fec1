package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/infras/postgres"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/model"
	"github.com/lovedesignwork/skyrock-sub001/shared"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/logger"
	gRepo "github.com/lovedesignwork/skyrock-sub001/shared/repository"
)

type Refund interface {
	Insert(ctx context.Context, refund model.RefundHistory) error
	GetAllByBookingID(ctx context.Context, bookingID string) ([]model.RefundHistory, error)
	SumRefundedByBookingID(ctx context.Context, bookingID string) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.RefundHistory]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Refund {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RefundHistory](model.RefundEntityName, model.RefundTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetAllByBookingID(ctx context.Context, bookingID string) ([]model.RefundHistory, error) {
	filter := shared.FilterByID(bookingID, model.FieldBookingID, model.RefundTableName)

	return repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, filter)
}

// SumRefundedByBookingID computes the cumulative refunded amount in SQL so
// concurrent refund checks always see committed ledger rows.
func (repo *repositoryImpl) SumRefundedByBookingID(ctx context.Context, bookingID string) (sum int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".refund.SumRefundedByBookingID")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT COALESCE(SUM(amount), 0) FROM %s WHERE booking_id = $1", model.RefundTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &sum, query, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to sum refunds: %w", err)
	}

	return sum, nil
}
