package customer

import (
	"context"

	domain "github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
)

// Store persists Customer state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	Save(ctx context.Context, value domain.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Customer, error)
}
