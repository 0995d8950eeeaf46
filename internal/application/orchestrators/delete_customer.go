package orchestrators

import (
	"context"
	"log/slog"
)

// DeleteCustomerResult carries the deleted customer's name for the
// confirmation message.
type DeleteCustomerResult struct {
	DeletedName string
}

// DeleteCustomerDeps holds dependencies for DeleteCustomer.
type DeleteCustomerDeps struct {
	CustomerStore CustomerStore
}

// ExecuteDeleteCustomer removes a customer record.
// PRE: id identifies an existing record
// POST: Record removed; the display name is returned
func ExecuteDeleteCustomer(ctx context.Context, id string, deps DeleteCustomerDeps) (DeleteCustomerResult, error) {
	existing, err := deps.CustomerStore.GetByID(ctx, id)
	if err != nil {
		return DeleteCustomerResult{}, ErrCustomerNotFound
	}
	if err := deps.CustomerStore.Delete(ctx, id); err != nil {
		return DeleteCustomerResult{}, err
	}

	slog.Info("customer_event", "event", "customer_deleted", "customer_id", id, "name", existing.FullName)

	return DeleteCustomerResult{DeletedName: existing.FullName}, nil
}
