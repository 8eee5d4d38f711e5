package model

import "time"

// ProcessedMessage is the idempotency marker for a mail message. Presence
// of a row means the message is never classified again.
type ProcessedMessage struct {
	MessageID         string    `gorm:"primaryKey;column:message_id;type:VARCHAR(512);"`
	ReceivedAt        time.Time `gorm:"not null"`
	InternetMessageID *string
}

func (ProcessedMessage) TableName() string {
	return "processed_messages"
}
