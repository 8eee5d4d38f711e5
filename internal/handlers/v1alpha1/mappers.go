package v1alpha1

import (
	api "github.com/jobkeeper/application-tracker/api/v1alpha1"
	"github.com/jobkeeper/application-tracker/internal/store/model"
)

func ApplicationToAPI(app model.Application) api.Application {
	return api.Application{
		ID:               app.ID,
		CreatedAt:        app.CreatedAt,
		LastUpdatedAt:    app.LastUpdatedAt,
		Source:           app.Source,
		Company:          app.Company,
		RoleTitle:        app.RoleTitle,
		Location:         app.Location,
		JobURL:           app.JobURL,
		Status:           app.Status,
		StatusConfidence: app.StatusConfidence,
		AppliedDate:      app.AppliedDate,
		EmailEvidence:    app.EmailEvidence,
		Notes:            app.Notes,
		NextFollowUpDate: app.NextFollowUpDate,
	}
}

func ApplicationListToAPI(applications model.ApplicationList) api.ApplicationList {
	items := make([]api.Application, 0, len(applications))
	for _, app := range applications {
		items = append(items, ApplicationToAPI(app))
	}
	return api.ApplicationList{Items: items, Total: len(items)}
}

func EventToAPI(event model.Event) api.Event {
	return api.Event{
		ID:             event.ID,
		ApplicationID:  event.ApplicationID,
		EventType:      event.EventType,
		EventDate:      event.EventDate,
		EvidenceSource: event.EvidenceSource,
		EvidenceText:   event.EvidenceText,
	}
}

func EventListToAPI(events model.EventList) api.EventList {
	items := make([]api.Event, 0, len(events))
	for _, event := range events {
		items = append(items, EventToAPI(event))
	}
	return api.EventList{Items: items, Total: len(items)}
}

func StatsToAPI(stats model.LedgerStats) api.Stats {
	return api.Stats{
		Applications: stats.Applications,
		Events:       stats.Events,
		ByStatus:     stats.ByStatus,
	}
}
