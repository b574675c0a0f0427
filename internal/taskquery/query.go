// Package taskquery turns a query specification into an ordered,
// paginated view over a task collection. The same semantics are
// mirrored in SQL by the postgres task store.
package taskquery

import (
	"sort"

	"github.com/nlitvinov/go-task-api/internal/models"
)

const (
	SortByDueDate  = "dueDate"
	SortByPriority = "priority"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type Query struct {
	// Status filters by exact match when non-empty. Membership in the
	// status enumeration is validated upstream.
	Status string
	// SortBy is one of the SortBy* constants. Any other value yields
	// the collection in its natural order (fail-open).
	SortBy string
	// Order is OrderAsc or OrderDesc. Empty means ascending.
	Order   string
	Page    int
	PerPage int
}

// Normalize fills in pagination defaults and caps the page size.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if q.Order == "" {
		q.Order = OrderAsc
	}
	return q
}

// Apply filters, sorts and paginates tasks according to q. The input
// slice is not modified. Sorting is stable: tasks with equal keys keep
// their relative order. An out-of-range page yields an empty slice.
func Apply(tasks []models.Task, q Query) []models.Task {
	q = q.Normalize()

	filtered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if q.Status != "" && task.Status != q.Status {
			continue
		}
		filtered = append(filtered, task)
	}

	desc := q.Order == OrderDesc
	switch q.SortBy {
	case SortByDueDate:
		sort.SliceStable(filtered, func(i, j int) bool {
			if desc {
				return filtered[j].DueDate.Before(filtered[i].DueDate)
			}
			return filtered[i].DueDate.Before(filtered[j].DueDate)
		})
	case SortByPriority:
		sort.SliceStable(filtered, func(i, j int) bool {
			if desc {
				return filtered[j].Priority < filtered[i].Priority
			}
			return filtered[i].Priority < filtered[j].Priority
		})
	}

	offset := (q.Page - 1) * q.PerPage
	if offset >= len(filtered) {
		return []models.Task{}
	}
	end := offset + q.PerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end]
}
