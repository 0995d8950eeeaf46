package projections

import (
	"context"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
)

// GetCustomerListQuery carries query parameters. CourseType filters the list
// to one of the dashboard tabs; empty means the "all customers" tab.
type GetCustomerListQuery struct {
	CourseType string
	Today      time.Time
}

// GetCustomerListResult carries the query result in canonical sort order.
type GetCustomerListResult struct {
	Customers []ProjectedCustomer
}

// GetCustomerListDeps holds dependencies for GetCustomerList.
type GetCustomerListDeps struct {
	CustomerStore CustomerStore
}

// QueryGetCustomerList loads all customers, projects each against the anchor
// date and returns them filtered by tab and sorted attention-first.
// PRE: query.Today is a UTC-midnight date
// POST: Returns projected customers; never nil slice
func QueryGetCustomerList(ctx context.Context, query GetCustomerListQuery, deps GetCustomerListDeps) (GetCustomerListResult, error) {
	all, err := deps.CustomerStore.List(ctx)
	if err != nil {
		return GetCustomerListResult{}, err
	}

	rows := make([]ProjectedCustomer, 0, len(all))
	for _, c := range all {
		if query.CourseType != "" && c.CourseType != query.CourseType {
			continue
		}
		rows = append(rows, ProjectedCustomer{
			Customer:   c,
			Projection: Project(c, query.Today),
		})
	}
	SortProjected(rows)

	return GetCustomerListResult{Customers: rows}, nil
}

// CourseTabs are the course-type filters accepted by the list views.
var CourseTabs = []string{"", customer.CourseMonthly, customer.CoursePerSession}
