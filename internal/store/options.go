package store

import (
	"time"

	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByCreatedTimeAsc
	SortByCreatedTimeDesc
	SortByEventDateDesc
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type ApplicationQueryFilter BaseQuerier

func NewApplicationQueryFilter() *ApplicationQueryFilter {
	return &ApplicationQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

// ByJobURL matches stored posting URLs exactly; blank stored URLs never match.
func (qf *ApplicationQueryFilter) ByJobURL(url string) *ApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_url = ? AND job_url != ''", url)
	})
	return qf
}

func (qf *ApplicationQueryFilter) ByCompany(company string) *ApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("company = ?", company)
	})
	return qf
}

func (qf *ApplicationQueryFilter) ByRoleTitle(roleTitle string) *ApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("role_title = ?", roleTitle)
	})
	return qf
}

// ByAppliedDateBetween keeps applications whose applied date falls inside
// the window, both ends inclusive.
func (qf *ApplicationQueryFilter) ByAppliedDateBetween(start, end time.Time) *ApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("applied_date >= ? AND applied_date <= ?", start, end)
	})
	return qf
}

func (qf *ApplicationQueryFilter) ByStatus(status string) *ApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

type ApplicationQueryOptions BaseQuerier

func NewApplicationQueryOptions() *ApplicationQueryOptions {
	return &ApplicationQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *ApplicationQueryOptions) WithSortOrder(sort SortOrder) *ApplicationQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByCreatedTimeAsc:
			return tx.Order("created_at ASC")
		case SortByCreatedTimeDesc:
			return tx.Order("created_at DESC")
		default:
			return tx
		}
	})
	return o
}

func (o *ApplicationQueryOptions) WithLimit(limit int) *ApplicationQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

type EventQueryOptions BaseQuerier

func NewEventQueryOptions() *EventQueryOptions {
	return &EventQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *EventQueryOptions) WithSortOrder(sort SortOrder) *EventQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByEventDateDesc:
			// insertion order breaks event-date ties
			return tx.Order("event_date DESC, id DESC")
		default:
			return tx
		}
	})
	return o
}

func (o *EventQueryOptions) ByApplicationID(id string) *EventQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("application_id = ?", id)
	})
	return o
}
