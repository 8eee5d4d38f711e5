package store

import (
	"context"

	"github.com/jobkeeper/application-tracker/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Application() Application
	Event() Event
	ProcessedMessage() ProcessedMessage
	Statistics(ctx context.Context) (model.LedgerStats, error)
	InitialMigration() error
	Close() error
}

type DataStore struct {
	application      Application
	event            Event
	processedMessage ProcessedMessage
	db               *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		application:      NewApplicationStore(db),
		event:            NewEventStore(db),
		processedMessage: NewProcessedMessageStore(db),
		db:               db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Application() Application {
	return s.application
}

func (s *DataStore) Event() Event {
	return s.event
}

func (s *DataStore) ProcessedMessage() ProcessedMessage {
	return s.processedMessage
}

func (s *DataStore) Statistics(ctx context.Context) (model.LedgerStats, error) {
	applications, err := s.Application().List(ctx, nil, nil)
	if err != nil {
		return model.LedgerStats{}, err
	}
	events, err := s.Event().List(ctx, nil)
	if err != nil {
		return model.LedgerStats{}, err
	}
	return model.NewLedgerStats(applications, events), nil
}

func (s *DataStore) InitialMigration() error {
	if err := s.Application().InitialMigration(); err != nil {
		return err
	}
	if err := s.Event().InitialMigration(); err != nil {
		return err
	}
	return s.ProcessedMessage().InitialMigration()
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
