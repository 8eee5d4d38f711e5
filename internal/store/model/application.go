package model

import (
	"encoding/json"
	"time"
)

// Application is one tracked job application. The ID is a content hash of
// the normalized identity tuple (company, role, url, applied date), so
// identical signals collide to the same row at creation time.
type Application struct {
	ID               string    `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt        time.Time `gorm:"not null"`
	LastUpdatedAt    time.Time `gorm:"not null"`
	Source           string    `gorm:"type:VARCHAR(100)"`
	Company          *string   `gorm:"index:applications_company_idx"`
	RoleTitle        *string
	Location         *string
	JobURL           *string `gorm:"column:job_url;index:applications_job_url_idx"`
	Status           string  `gorm:"not null;index:applications_status_idx"`
	StatusConfidence *string `gorm:"type:VARCHAR(20)"`
	AppliedDate      *time.Time
	EmailEvidence    *string
	Notes            *string
	NextFollowUpDate *time.Time
	Events           []Event `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE;"`
}

type ApplicationList []Application

func (a Application) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
