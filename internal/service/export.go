package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/internal/store/model"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	applicationsSheet = "Applications"
	eventsSheet       = "Events"
)

var applicationHeaders = []interface{}{
	"ApplicationID", "CreatedAt", "LastUpdatedAt", "Source", "Company",
	"RoleTitle", "Location", "JobURL", "Status", "StatusConfidence",
	"AppliedDate", "EmailEvidence", "Notes", "NextFollowUpDate",
}

var eventHeaders = []interface{}{
	"EventID", "ApplicationID", "EventType", "EventDate", "EvidenceSource", "EvidenceText",
}

// ExportResult summarizes one export run.
type ExportResult struct {
	Path         string
	Applications int
	Events       int
}

// ExportService writes the full ledger to an Excel workbook with one
// sheet for applications and one for events.
type ExportService struct {
	store store.Store
}

func NewExportService(s store.Store) *ExportService {
	return &ExportService{store: s}
}

func (s *ExportService) ExportXLSX(ctx context.Context, path string) (ExportResult, error) {
	applications, err := s.store.Application().List(ctx, nil,
		store.NewApplicationQueryOptions().WithSortOrder(store.SortByCreatedTimeDesc))
	if err != nil {
		return ExportResult{}, err
	}
	if len(applications) == 0 {
		return ExportResult{}, NewErrNoApplications()
	}
	events, err := s.store.Event().List(ctx,
		store.NewEventQueryOptions().WithSortOrder(store.SortByEventDateDesc))
	if err != nil {
		return ExportResult{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicationsSheet); err != nil {
		return ExportResult{}, err
	}
	if err := f.SetSheetRow(applicationsSheet, "A1", &applicationHeaders); err != nil {
		return ExportResult{}, err
	}
	for i, app := range applications {
		row := applicationRow(app)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(applicationsSheet, cell, &row); err != nil {
			return ExportResult{}, err
		}
	}

	if _, err := f.NewSheet(eventsSheet); err != nil {
		return ExportResult{}, err
	}
	if err := f.SetSheetRow(eventsSheet, "A1", &eventHeaders); err != nil {
		return ExportResult{}, err
	}
	for i, event := range events {
		row := eventRow(event)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(eventsSheet, cell, &row); err != nil {
			return ExportResult{}, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ExportResult{}, err
	}
	if err := f.SaveAs(path); err != nil {
		return ExportResult{}, err
	}

	zap.S().Named("export").Infof("exported %d applications and %d events to %s", len(applications), len(events), path)

	return ExportResult{Path: path, Applications: len(applications), Events: len(events)}, nil
}

func applicationRow(app model.Application) []interface{} {
	return []interface{}{
		app.ID,
		formatTime(&app.CreatedAt),
		formatTime(&app.LastUpdatedAt),
		app.Source,
		stringOrEmpty(app.Company),
		stringOrEmpty(app.RoleTitle),
		stringOrEmpty(app.Location),
		stringOrEmpty(app.JobURL),
		app.Status,
		stringOrEmpty(app.StatusConfidence),
		formatTime(app.AppliedDate),
		stringOrEmpty(app.EmailEvidence),
		stringOrEmpty(app.Notes),
		formatTime(app.NextFollowUpDate),
	}
}

func eventRow(event model.Event) []interface{} {
	return []interface{}{
		event.ID,
		event.ApplicationID,
		event.EventType,
		formatTime(&event.EventDate),
		event.EvidenceSource,
		stringOrEmpty(event.EvidenceText),
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
