package store

import (
	"context"

	"github.com/jobkeeper/application-tracker/internal/store/model"
	"gorm.io/gorm"
)

type Event interface {
	Insert(ctx context.Context, event model.Event) (uint, error)
	List(ctx context.Context, options *EventQueryOptions) (model.EventList, error)
	InitialMigration() error
}

type EventStore struct {
	db *gorm.DB
}

// Make sure we conform to Event interface
var _ Event = (*EventStore)(nil)

func NewEventStore(db *gorm.DB) Event {
	return &EventStore{db: db}
}

func (e *EventStore) InitialMigration() error {
	return e.db.AutoMigrate(&model.Event{})
}

func (e *EventStore) Insert(ctx context.Context, event model.Event) (uint, error) {
	result := e.getDB(ctx).Create(&event)
	if result.Error != nil {
		return 0, result.Error
	}
	return event.ID, nil
}

func (e *EventStore) List(ctx context.Context, options *EventQueryOptions) (model.EventList, error) {
	var events model.EventList
	tx := e.getDB(ctx).Model(&events)

	if options != nil {
		for _, fn := range options.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (e *EventStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return e.db
}
