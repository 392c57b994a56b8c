package repository

import (
	"context"

	"neohand/internal/domain/entity"
)

type SupporterRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supporter, error)
	List(ctx context.Context) ([]*entity.Supporter, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
