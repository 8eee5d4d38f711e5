package store

import (
	"context"
	"errors"
	"time"

	"github.com/jobkeeper/application-tracker/internal/store/model"
	"gorm.io/gorm"
)

type Application interface {
	Get(ctx context.Context, id string) (*model.Application, error)
	Insert(ctx context.Context, application model.Application) (bool, error)
	Update(ctx context.Context, id string, fields ApplicationUpdate) (bool, error)
	List(ctx context.Context, filter *ApplicationQueryFilter, options *ApplicationQueryOptions) (model.ApplicationList, error)
	InitialMigration() error
}

// ApplicationUpdate is a structured partial update: only non-nil fields are
// written, so populated columns are never clobbered by absent values.
type ApplicationUpdate struct {
	Status           *string
	StatusConfidence *string
	Company          *string
	RoleTitle        *string
	Location         *string
	JobURL           *string
	EmailEvidence    *string
	Notes            *string
	NextFollowUpDate *time.Time
}

func (u ApplicationUpdate) isEmpty() bool {
	return u.Status == nil && u.StatusConfidence == nil && u.Company == nil &&
		u.RoleTitle == nil && u.Location == nil && u.JobURL == nil &&
		u.EmailEvidence == nil && u.Notes == nil && u.NextFollowUpDate == nil
}

type ApplicationStore struct {
	db *gorm.DB
}

// Make sure we conform to Application interface
var _ Application = (*ApplicationStore)(nil)

func NewApplicationStore(db *gorm.DB) Application {
	return &ApplicationStore{db: db}
}

func (a *ApplicationStore) InitialMigration() error {
	return a.db.AutoMigrate(&model.Application{})
}

func (a *ApplicationStore) Get(ctx context.Context, id string) (*model.Application, error) {
	var application model.Application
	result := a.getDB(ctx).First(&application, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &application, nil
}

// Insert creates the application. A duplicate id is benign: the row already
// exists by construction of the content-hash identifier, so the insert
// reports false without error.
func (a *ApplicationStore) Insert(ctx context.Context, application model.Application) (bool, error) {
	now := time.Now()
	if application.CreatedAt.IsZero() {
		application.CreatedAt = now
	}
	application.LastUpdatedAt = now

	result := a.getDB(ctx).Create(&application)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

func (a *ApplicationStore) Update(ctx context.Context, id string, fields ApplicationUpdate) (bool, error) {
	if fields.isEmpty() {
		return false, nil
	}

	application := model.Application{ID: id}
	selectFields := []string{"last_updated_at"}
	application.LastUpdatedAt = time.Now()

	if fields.Status != nil {
		application.Status = *fields.Status
		selectFields = append(selectFields, "status")
	}
	if fields.StatusConfidence != nil {
		application.StatusConfidence = fields.StatusConfidence
		selectFields = append(selectFields, "status_confidence")
	}
	if fields.Company != nil {
		application.Company = fields.Company
		selectFields = append(selectFields, "company")
	}
	if fields.RoleTitle != nil {
		application.RoleTitle = fields.RoleTitle
		selectFields = append(selectFields, "role_title")
	}
	if fields.Location != nil {
		application.Location = fields.Location
		selectFields = append(selectFields, "location")
	}
	if fields.JobURL != nil {
		application.JobURL = fields.JobURL
		selectFields = append(selectFields, "job_url")
	}
	if fields.EmailEvidence != nil {
		application.EmailEvidence = fields.EmailEvidence
		selectFields = append(selectFields, "email_evidence")
	}
	if fields.Notes != nil {
		application.Notes = fields.Notes
		selectFields = append(selectFields, "notes")
	}
	if fields.NextFollowUpDate != nil {
		application.NextFollowUpDate = fields.NextFollowUpDate
		selectFields = append(selectFields, "next_follow_up_date")
	}

	result := a.getDB(ctx).Model(&application).Select(selectFields).Updates(&application)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (a *ApplicationStore) List(ctx context.Context, filter *ApplicationQueryFilter, options *ApplicationQueryOptions) (model.ApplicationList, error) {
	var applications model.ApplicationList
	tx := a.getDB(ctx).Model(&applications)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if options != nil {
		for _, fn := range options.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}
	return applications, nil
}

func (a *ApplicationStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return a.db
}
