package projections

import (
	"context"

	domainCustomer "github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
)

// CustomerStore interface for customer list queries.
type CustomerStore interface {
	List(ctx context.Context) ([]domainCustomer.Customer, error)
}
