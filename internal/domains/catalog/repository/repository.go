package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/infras/postgres"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
	gRepo "github.com/lovedesignwork/skyrock-sub001/shared/repository"
)

type Package interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Package, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Package, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type packageRepositoryImpl struct {
	gRepo.Repository[model.Package]
}

func NewPackage(db *postgres.Connection, otel otel.Otel) Package {
	return &packageRepositoryImpl{
		Repository: gRepo.NewRepository[model.Package](model.PackageEntityName, model.PackageTableName, model.PackageFieldID, db, otel),
	}
}

type Addon interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Addon, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Addon, error)
}

type addonRepositoryImpl struct {
	gRepo.Repository[model.Addon]
}

func NewAddon(db *postgres.Connection, otel otel.Otel) Addon {
	return &addonRepositoryImpl{
		Repository: gRepo.NewRepository[model.Addon](model.AddonEntityName, model.AddonTableName, model.AddonFieldID, db, otel),
	}
}
