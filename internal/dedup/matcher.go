package dedup

import (
	"context"
	"errors"
	"time"

	"github.com/jobkeeper/application-tracker/internal/store"
	"go.uber.org/zap"
)

var observedDateLayouts = []string{time.RFC3339, "2006-01-02"}

// Matcher finds the existing application a new observation belongs to and
// folds new data into it without overwriting what is already known.
type Matcher struct {
	store      store.Store
	windowDays int
}

func NewMatcher(s store.Store, windowDays int) *Matcher {
	return &Matcher{store: s, windowDays: windowDays}
}

// FindMatchingApplication returns the id of the application matching the
// observation, or empty when no match exists. A posting URL match always
// wins; otherwise the same company and role title within the merge window
// around the observed date counts as the same application, oldest record
// first.
func (m *Matcher) FindMatchingApplication(ctx context.Context, company, roleTitle, jobURL, observedDate string) (string, error) {
	if jobURL != "" {
		applications, err := m.store.Application().List(ctx,
			store.NewApplicationQueryFilter().ByJobURL(jobURL),
			store.NewApplicationQueryOptions().WithLimit(1))
		if err != nil {
			return "", err
		}
		if len(applications) > 0 {
			zap.S().Named("dedup").Infof("found match by job_url: %s", applications[0].ID)
			return applications[0].ID, nil
		}
	}

	if company == "" || roleTitle == "" || observedDate == "" {
		return "", nil
	}

	observedAt, err := parseObservedDate(observedDate)
	if err != nil {
		// unusable date means no fuzzy match, not a failure
		zap.S().Named("dedup").Warnf("error parsing date for merge: %v", err)
		return "", nil
	}

	windowStart := observedAt.AddDate(0, 0, -m.windowDays)
	windowEnd := observedAt.AddDate(0, 0, m.windowDays)

	applications, err := m.store.Application().List(ctx,
		store.NewApplicationQueryFilter().
			ByCompany(company).
			ByRoleTitle(roleTitle).
			ByAppliedDateBetween(windowStart, windowEnd),
		store.NewApplicationQueryOptions().
			WithSortOrder(store.SortByCreatedTimeAsc).
			WithLimit(1))
	if err != nil {
		return "", err
	}
	if len(applications) > 0 {
		zap.S().Named("dedup").Infof("found match by company+role+date: %s", applications[0].ID)
		return applications[0].ID, nil
	}

	return "", nil
}

// MergeApplicationData fills the application's blank fields from the new
// observation and appends notes. Populated fields are left alone. Reports
// whether anything was written; a missing application is reported as no
// merge rather than an error.
func (m *Matcher) MergeApplicationData(ctx context.Context, applicationID string, company, roleTitle, location, jobURL, notes *string) (bool, error) {
	existing, err := m.store.Application().Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	update := store.ApplicationUpdate{}
	if isBlank(existing.Company) && !isBlank(company) {
		update.Company = company
	}
	if isBlank(existing.RoleTitle) && !isBlank(roleTitle) {
		update.RoleTitle = roleTitle
	}
	if isBlank(existing.Location) && !isBlank(location) {
		update.Location = location
	}
	if isBlank(existing.JobURL) && !isBlank(jobURL) {
		update.JobURL = jobURL
	}
	if !isBlank(notes) {
		merged := *notes
		if !isBlank(existing.Notes) {
			merged = *existing.Notes + "\n" + *notes
		}
		update.Notes = &merged
	}

	return m.store.Application().Update(ctx, applicationID, update)
}

func parseObservedDate(value string) (time.Time, error) {
	var err error
	for _, layout := range observedDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
