package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/infras/postgres"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	"github.com/lovedesignwork/skyrock-sub001/shared"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/logger"
	gRepo "github.com/lovedesignwork/skyrock-sub001/shared/repository"
	"github.com/lovedesignwork/skyrock-sub001/shared/timezone"
)

type Booking interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, agg model.Aggregate) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetByID(ctx context.Context, id string) (model.Booking, error)
	GetByReference(ctx context.Context, reference string) (model.Booking, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (model.Booking, error)
	GetAggregate(ctx context.Context, bookingID string) (model.Aggregate, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
	TransitionStatus(ctx context.Context, bookingID string, from []string, to string, actor string) (bool, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	customerRepo  gRepo.Repository[model.Customer]
	transportRepo gRepo.Repository[model.Transport]
	addonLineRepo gRepo.Repository[model.AddonLine]
	db            *postgres.Connection
	otel          otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository:    gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		customerRepo:  gRepo.NewRepository[model.Customer](model.CustomerEntityName, model.CustomerTableName, model.FieldID, db, otel),
		transportRepo: gRepo.NewRepository[model.Transport](model.TransportEntityName, model.TransportTableName, model.FieldID, db, otel),
		addonLineRepo: gRepo.NewRepository[model.AddonLine](model.AddonLineEntityName, model.AddonLineTableName, model.FieldID, db, otel),
		db:            db,
		otel:          otel,
	}
}

// CreateTx writes the booking with its customer, transport and addon rows
// inside the caller's transaction.
func (repo *repositoryImpl) CreateTx(ctx context.Context, tx *sqlx.Tx, agg model.Aggregate) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = repo.InsertTx(ctx, tx, agg.Booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = repo.customerRepo.InsertTx(ctx, tx, agg.Customer); err != nil {
		return fmt.Errorf("failed to insert booking customer: %w", err)
	}

	if err = repo.transportRepo.InsertTx(ctx, tx, agg.Transport); err != nil {
		return fmt.Errorf("failed to insert booking transport: %w", err)
	}

	if len(agg.Addons) > 0 {
		if err = repo.addonLineRepo.InsertBulkTx(ctx, tx, agg.Addons); err != nil {
			return fmt.Errorf("failed to insert booking addons: %w", err)
		}
	}

	return nil
}

func (repo *repositoryImpl) GetByID(ctx context.Context, id string) (model.Booking, error) {
	return repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (repo *repositoryImpl) GetByReference(ctx context.Context, reference string) (model.Booking, error) {
	return repo.Get(ctx, shared.FilterByID(reference, model.FieldReference, model.TableName))
}

func (repo *repositoryImpl) GetByPaymentIntentID(ctx context.Context, intentID string) (model.Booking, error) {
	return repo.Get(ctx, shared.FilterByID(intentID, model.FieldPaymentIntentID, model.TableName))
}

// GetAggregate rebuilds the full booking aggregate from its rows. Sync
// payloads are derived from this, never from a cached snapshot.
func (repo *repositoryImpl) GetAggregate(ctx context.Context, bookingID string) (agg model.Aggregate, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAggregate")
	defer scope.End()
	defer scope.TraceIfError(err)

	agg.Booking, err = repo.GetByID(ctx, bookingID)
	if err != nil {
		return agg, fmt.Errorf("failed to get booking: %w", err)
	}

	if agg.Booking.ID == constant.Empty {
		return agg, nil
	}

	byBooking := shared.FilterByID(bookingID, model.FieldBookingID, model.CustomerTableName)

	agg.Customer, err = repo.customerRepo.Get(ctx, byBooking)
	if err != nil {
		return agg, fmt.Errorf("failed to get booking customer: %w", err)
	}

	byBooking = shared.FilterByID(bookingID, model.FieldBookingID, model.TransportTableName)

	agg.Transport, err = repo.transportRepo.Get(ctx, byBooking)
	if err != nil {
		return agg, fmt.Errorf("failed to get booking transport: %w", err)
	}

	byBooking = shared.FilterByID(bookingID, model.FieldBookingID, model.AddonLineTableName)

	agg.Addons, err = repo.addonLineRepo.GetAll(ctx, gDto.QueryParams{}, byBooking)
	if err != nil {
		return agg, fmt.Errorf("failed to get booking addons: %w", err)
	}

	return agg, nil
}

// TransitionStatus moves the booking to the given status only when its
// current status is one of the allowed source statuses. The conditional
// update is the serialization point for concurrent webhook deliveries, so
// a redelivered event observes zero affected rows instead of transitioning
// twice.
func (repo *repositoryImpl) TransitionStatus(ctx context.Context, bookingID string, from []string, to string, actor string) (transitioned bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.TransitionStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET status = $1, modified_at = $2, modified_by = $3 WHERE id = $4 AND status = ANY($5)",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, to, timezone.Now(), actor, bookingID, pq.Array(from))
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to transition booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read booking transition result: %w", err)
	}

	return affected == 1, nil
}

func (repo *repositoryImpl) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	return repo.Exist(ctx, shared.FilterByID(reference, model.FieldReference, model.TableName))
}
