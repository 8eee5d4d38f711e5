package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	api "github.com/jobkeeper/application-tracker/api/v1alpha1"
	"github.com/jobkeeper/application-tracker/internal/dedup"
	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/internal/store/model"
	"github.com/jobkeeper/application-tracker/internal/validator"
	"github.com/jobkeeper/application-tracker/pkg/metrics"
	"go.uber.org/zap"
)

// template rows shipped with the sample import files
var placeholderCompanies = map[string]struct{}{
	"example corp":  {},
	"techcorp gmbh": {},
}

// ImportRecord is one row of a CSV or JSON import file.
type ImportRecord struct {
	Company     string `json:"company"`
	RoleTitle   string `json:"role_title"`
	Location    string `json:"location"`
	JobURL      string `json:"job_url" validate:"omitempty,url"`
	Source      string `json:"source"`
	Status      string `json:"status" validate:"omitempty,status"`
	AppliedDate string `json:"applied_date" validate:"omitempty,observed_date"`
	Notes       string `json:"notes"`
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Loaded   int
	Imported int
	Merged   int
	Skipped  int
}

// ImportService loads applications from CSV or JSON files into the ledger,
// deduplicating against what is already recorded.
type ImportService struct {
	store     store.Store
	matcher   *dedup.Matcher
	loc       *time.Location
	validator *validator.Validator
}

func NewImportService(s store.Store, m *dedup.Matcher, loc *time.Location) *ImportService {
	v := validator.NewValidator()
	v.Register(validator.NewImportValidationRules()...)
	return &ImportService{store: s, matcher: m, loc: loc, validator: v}
}

// ImportFile reads the file, picks the codec from the extension and
// imports every entry. A failing entry is logged and skipped.
func (s *ImportService) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	records, err := s.load(path)
	if err != nil {
		return ImportResult{}, err
	}
	if len(records) == 0 {
		return ImportResult{}, fmt.Errorf("no entries found in file")
	}

	zap.S().Named("import").Infof("loaded %d entries from %s", len(records), path)

	result := ImportResult{Loaded: len(records)}
	fileName := filepath.Base(path)
	for _, record := range records {
		imported, merged, err := s.importRecord(ctx, record, fileName)
		if err != nil {
			zap.S().Named("import").Errorf("error importing entry: %v", err)
			result.Skipped++
			continue
		}
		switch {
		case imported:
			result.Imported++
		case merged:
			result.Merged++
		default:
			result.Skipped++
		}
	}
	return result, nil
}

func (s *ImportService) load(path string) ([]ImportRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(f)
	case ".json":
		var records []ImportRecord
		if err := json.NewDecoder(f).Decode(&records); err != nil {
			return nil, fmt.Errorf("error reading JSON file: %w", err)
		}
		return records, nil
	default:
		return nil, NewErrUnsupportedFormat(filepath.Ext(path))
	}
}

// importRecord resolves one entry against the ledger and writes it inside
// a single transaction, so a created application never lands without its
// Applied event.
func (s *ImportService) importRecord(ctx context.Context, record ImportRecord, fileName string) (bool, bool, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return false, false, err
	}

	imported, merged, err := s.resolveRecord(ctx, record, fileName)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return false, false, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return false, false, err
	}
	return imported, merged, nil
}

func (s *ImportService) resolveRecord(ctx context.Context, record ImportRecord, fileName string) (imported bool, merged bool, err error) {
	record.trim()

	if err := s.validator.Struct(record); err != nil {
		return false, false, fmt.Errorf("invalid entry: %w", err)
	}

	if _, ok := placeholderCompanies[strings.ToLower(record.Company)]; ok {
		return false, false, nil
	}

	appliedAt := s.parseAppliedDate(record.AppliedDate)
	appliedDate := appliedAt.Format(time.RFC3339)

	applicationID, err := s.matcher.FindMatchingApplication(ctx, record.Company, record.RoleTitle, record.JobURL, appliedDate)
	if err != nil {
		return false, false, err
	}

	if applicationID != "" {
		if _, err := s.matcher.MergeApplicationData(ctx, applicationID,
			optional(record.Company), optional(record.RoleTitle),
			optional(record.Location), optional(record.JobURL),
			optional(record.Notes)); err != nil {
			return false, false, err
		}
		zap.S().Named("import").Infof("merged with existing application: %s", applicationID)
		return false, true, nil
	}

	applicationID = dedup.GenerateApplicationID(record.Company, record.RoleTitle, record.JobURL, appliedDate)

	source := record.Source
	if source == "" {
		source = "manual"
	}
	status := record.Status
	if status == "" {
		status = string(api.EventTypeApplied)
	}
	confidence := string(api.ConfidenceHigh)

	application := model.Application{
		ID:               applicationID,
		Source:           source,
		Company:          optional(record.Company),
		RoleTitle:        optional(record.RoleTitle),
		Location:         optional(record.Location),
		JobURL:           optional(record.JobURL),
		Status:           status,
		StatusConfidence: &confidence,
		AppliedDate:      &appliedAt,
		Notes:            optional(record.Notes),
	}
	if _, err := s.store.Application().Insert(ctx, application); err != nil {
		return false, false, err
	}
	metrics.IncreaseApplicationsCreatedMetric()

	evidence := fmt.Sprintf("Imported from %s", fileName)
	if _, err := s.store.Event().Insert(ctx, model.Event{
		ApplicationID:  applicationID,
		EventType:      string(api.EventTypeApplied),
		EventDate:      appliedAt,
		EvidenceSource: "manual_import",
		EvidenceText:   &evidence,
	}); err != nil {
		return false, false, err
	}
	metrics.IncreaseEventsRecordedMetric(string(api.EventTypeApplied))

	zap.S().Named("import").Infof("imported application: %s - %s", record.Company, record.RoleTitle)
	return true, false, nil
}

// parseAppliedDate accepts RFC3339 timestamps and bare dates; an absent
// value falls back to the current time.
func (s *ImportService) parseAppliedDate(value string) time.Time {
	if value == "" {
		return time.Now().In(s.loc)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, s.loc); err == nil {
			return t
		}
	}
	return time.Now().In(s.loc)
}

func (r *ImportRecord) trim() {
	r.Company = strings.TrimSpace(r.Company)
	r.RoleTitle = strings.TrimSpace(r.RoleTitle)
	r.Location = strings.TrimSpace(r.Location)
	r.JobURL = strings.TrimSpace(r.JobURL)
	r.Source = strings.TrimSpace(r.Source)
	r.Status = strings.TrimSpace(r.Status)
	r.AppliedDate = strings.TrimSpace(r.AppliedDate)
	r.Notes = strings.TrimSpace(r.Notes)
}

func readCSV(r io.Reader) ([]ImportRecord, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]ImportRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, ImportRecord{
			Company:     field(row, "company"),
			RoleTitle:   field(row, "role_title"),
			Location:    field(row, "location"),
			JobURL:      field(row, "job_url"),
			Source:      field(row, "source"),
			Status:      field(row, "status"),
			AppliedDate: field(row, "applied_date"),
			Notes:       field(row, "notes"),
		})
	}
	return records, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
