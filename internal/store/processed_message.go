package store

import (
	"context"
	"errors"
	"time"

	"github.com/jobkeeper/application-tracker/internal/store/model"
	"gorm.io/gorm"
)

type ProcessedMessage interface {
	IsProcessed(ctx context.Context, messageID string) (bool, error)
	Mark(ctx context.Context, messageID string, receivedAt time.Time, internetMessageID *string) error
	InitialMigration() error
}

type ProcessedMessageStore struct {
	db *gorm.DB
}

// Make sure we conform to ProcessedMessage interface
var _ ProcessedMessage = (*ProcessedMessageStore)(nil)

func NewProcessedMessageStore(db *gorm.DB) ProcessedMessage {
	return &ProcessedMessageStore{db: db}
}

func (p *ProcessedMessageStore) InitialMigration() error {
	return p.db.AutoMigrate(&model.ProcessedMessage{})
}

func (p *ProcessedMessageStore) IsProcessed(ctx context.Context, messageID string) (bool, error) {
	var count int64
	result := p.getDB(ctx).Model(&model.ProcessedMessage{}).Where("message_id = ?", messageID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Mark records the message id so a later sync skips it. Marking an already
// recorded message is a no-op.
func (p *ProcessedMessageStore) Mark(ctx context.Context, messageID string, receivedAt time.Time, internetMessageID *string) error {
	message := model.ProcessedMessage{
		MessageID:         messageID,
		ReceivedAt:        receivedAt,
		InternetMessageID: internetMessageID,
	}
	result := p.getDB(ctx).Create(&message)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return result.Error
	}
	return nil
}

func (p *ProcessedMessageStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return p.db
}
