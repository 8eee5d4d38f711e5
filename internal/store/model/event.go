package model

import (
	"encoding/json"
	"time"
)

// Event is an immutable lifecycle observation attached to an application.
// Rows are append-only; ordering is by event date with insertion order as
// the tie-break.
type Event struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id"`
	ApplicationID  string    `gorm:"not null;type:VARCHAR(255);index:events_application_idx"`
	EventType      string    `gorm:"not null;type:VARCHAR(50)"`
	EventDate      time.Time `gorm:"not null;index:events_date_idx"`
	EvidenceSource string    `gorm:"type:VARCHAR(100)"`
	EvidenceText   *string
}

type EventList []Event

func (e Event) String() string {
	val, _ := json.Marshal(e)
	return string(val)
}
