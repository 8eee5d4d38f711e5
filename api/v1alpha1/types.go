package v1alpha1

import "time"

// EventType is the classified lifecycle meaning of an observed signal. The
// same values double as application statuses.
type EventType string

const (
	EventTypeDraft     EventType = "Draft"
	EventTypeApplied   EventType = "Applied"
	EventTypeInterview EventType = "Interview"
	EventTypeOffer     EventType = "Offer"
	EventTypeRejected  EventType = "Rejected"
	EventTypeOther     EventType = "Other"
)

// Confidence is the discrete tier derived from a classification score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Application is the wire representation of a tracked job application.
type Application struct {
	ID               string     `json:"id"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
	Source           string     `json:"source"`
	Company          *string    `json:"company,omitempty"`
	RoleTitle        *string    `json:"roleTitle,omitempty"`
	Location         *string    `json:"location,omitempty"`
	JobURL           *string    `json:"jobUrl,omitempty"`
	Status           string     `json:"status"`
	StatusConfidence *string    `json:"statusConfidence,omitempty"`
	AppliedDate      *time.Time `json:"appliedDate,omitempty"`
	EmailEvidence    *string    `json:"emailEvidence,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty"`
}

type ApplicationList struct {
	Items []Application `json:"items"`
	Total int           `json:"total"`
}

// Event is the wire representation of an immutable lifecycle observation.
type Event struct {
	ID             uint      `json:"id"`
	ApplicationID  string    `json:"applicationId"`
	EventType      string    `json:"eventType"`
	EventDate      time.Time `json:"eventDate"`
	EvidenceSource string    `json:"evidenceSource"`
	EvidenceText   *string   `json:"evidenceText,omitempty"`
}

type EventList struct {
	Items []Event `json:"items"`
	Total int     `json:"total"`
}

// Stats summarizes the ledger for the dashboard landing view.
type Stats struct {
	Applications int            `json:"applications"`
	Events       int            `json:"events"`
	ByStatus     map[string]int `json:"byStatus"`
}
