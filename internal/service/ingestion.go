package service

import (
	"context"
	"fmt"
	"time"

	api "github.com/jobkeeper/application-tracker/api/v1alpha1"
	"github.com/jobkeeper/application-tracker/internal/classifier"
	"github.com/jobkeeper/application-tracker/internal/dedup"
	"github.com/jobkeeper/application-tracker/internal/graph"
	"github.com/jobkeeper/application-tracker/internal/pipeline"
	"github.com/jobkeeper/application-tracker/internal/store"
	"github.com/jobkeeper/application-tracker/internal/store/model"
	"github.com/jobkeeper/application-tracker/pkg/metrics"
	"go.uber.org/zap"
)

// MailReader is the slice of the mail client the ingestion service needs.
type MailReader interface {
	GetMessages(ctx context.Context, sinceDays int) ([]graph.Message, error)
	GetUserInfo(ctx context.Context) (*graph.User, error)
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	User      string
	Fetched   int
	Processed int
	Skipped   int
}

// IngestionService turns inbox messages into applications and lifecycle
// events. Each message is handled at most once across runs.
type IngestionService struct {
	store      store.Store
	classifier *classifier.Classifier
	matcher    *dedup.Matcher
	pipeline   *pipeline.Pipeline
	mail       MailReader
}

func NewIngestionService(s store.Store, c *classifier.Classifier, m *dedup.Matcher, p *pipeline.Pipeline, mail MailReader) *IngestionService {
	return &IngestionService{
		store:      s,
		classifier: c,
		matcher:    m,
		pipeline:   p,
		mail:       mail,
	}
}

// Sync fetches recent messages and processes each one. A failing message
// is logged and skipped; only fetch and auth failures abort the run.
func (s *IngestionService) Sync(ctx context.Context, sinceDays int) (SyncResult, error) {
	user, err := s.mail.GetUserInfo(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("authentication failed: %w", err)
	}
	zap.S().Named("ingestion").Infof("authenticated as: %s", user.UserPrincipalName)

	messages, err := s.mail.GetMessages(ctx, sinceDays)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to fetch messages: %w", err)
	}

	result := SyncResult{User: user.UserPrincipalName, Fetched: len(messages)}
	for i := range messages {
		processed, err := s.ProcessMessage(ctx, &messages[i])
		if err != nil {
			zap.S().Named("ingestion").Errorf("error processing email %s: %v", messages[i].ID, err)
			metrics.IncreaseMessagesProcessedMetric("error")
			result.Skipped++
			continue
		}
		if processed {
			result.Processed++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// ProcessMessage classifies one message and records its effect on the
// ledger. It reports false when the message was skipped, either because
// it was already handled or because nothing meaningful was classified.
// All writes for one message commit or roll back together.
func (s *IngestionService) ProcessMessage(ctx context.Context, msg *graph.Message) (bool, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return false, err
	}

	processed, err := s.processMessage(ctx, msg)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return false, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return false, err
	}
	return processed, nil
}

func (s *IngestionService) processMessage(ctx context.Context, msg *graph.Message) (bool, error) {
	alreadyProcessed, err := s.store.ProcessedMessage().IsProcessed(ctx, msg.ID)
	if err != nil {
		return false, err
	}
	if alreadyProcessed {
		zap.S().Named("ingestion").Debugf("email %s already processed, skipping", msg.ID)
		metrics.IncreaseMessagesProcessedMetric("duplicate")
		return false, nil
	}

	subject := msg.Subject
	sender := msg.Sender()
	receivedAt := msg.ReceivedDateTime

	zap.S().Named("ingestion").Infof("processing email: %.50s... from %s", subject, sender)

	meta := s.classifier.ExtractMetadata(subject, sender, msg.BodyText())

	// Nothing recognizable. Remember the message so the next sync does not
	// reclassify it.
	if meta.EventType == api.EventTypeOther && meta.Confidence == api.ConfidenceLow {
		zap.S().Named("ingestion").Info("skipping low-confidence 'Other' event")
		if err := s.store.ProcessedMessage().Mark(ctx, msg.ID, receivedAt, msg.InternetMessageID); err != nil {
			return false, err
		}
		metrics.IncreaseMessagesProcessedMetric("skipped")
		return false, nil
	}

	var appliedDate *time.Time
	observedDate := ""
	if meta.EventType == api.EventTypeApplied {
		appliedDate = &receivedAt
		observedDate = receivedAt.Format(time.RFC3339)
	}

	company := deref(meta.Company)
	roleTitle := deref(meta.RoleTitle)

	applicationID, err := s.matcher.FindMatchingApplication(ctx, company, roleTitle, "", observedDate)
	if err != nil {
		return false, err
	}

	confidence := string(meta.Confidence)
	if applicationID == "" {
		idDate := receivedAt.Format(time.RFC3339)
		if appliedDate != nil {
			idDate = appliedDate.Format(time.RFC3339)
		}
		applicationID = dedup.GenerateApplicationID(company, roleTitle, "", idDate)

		application := model.Application{
			ID:               applicationID,
			Source:           "email",
			Company:          meta.Company,
			RoleTitle:        meta.RoleTitle,
			Status:           string(meta.EventType),
			StatusConfidence: &confidence,
			AppliedDate:      appliedDate,
			EmailEvidence:    &subject,
		}
		if _, err := s.store.Application().Insert(ctx, application); err != nil {
			return false, err
		}
		metrics.IncreaseApplicationsCreatedMetric()
	} else {
		existing, err := s.store.Application().Get(ctx, applicationID)
		if err != nil {
			return false, err
		}

		if s.pipeline.ShouldUpdateStatus(api.StringToEventType(existing.Status), meta.EventType) {
			status := string(meta.EventType)
			if _, err := s.store.Application().Update(ctx, applicationID, store.ApplicationUpdate{
				Status:           &status,
				StatusConfidence: &confidence,
			}); err != nil {
				return false, err
			}
			metrics.IncreaseStatusUpdatesMetric(status)
		}

		if _, err := s.matcher.MergeApplicationData(ctx, applicationID, meta.Company, meta.RoleTitle, nil, nil, nil); err != nil {
			return false, err
		}
	}

	evidence := fmt.Sprintf("Subject: %s", subject)
	if _, err := s.store.Event().Insert(ctx, model.Event{
		ApplicationID:  applicationID,
		EventType:      string(meta.EventType),
		EventDate:      receivedAt,
		EvidenceSource: "email",
		EvidenceText:   &evidence,
	}); err != nil {
		return false, err
	}
	metrics.IncreaseEventsRecordedMetric(string(meta.EventType))

	if err := s.store.ProcessedMessage().Mark(ctx, msg.ID, receivedAt, msg.InternetMessageID); err != nil {
		return false, err
	}

	zap.S().Named("ingestion").Infof("created %s event for application %s", meta.EventType, applicationID)
	metrics.IncreaseMessagesProcessedMetric("processed")
	return true, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
