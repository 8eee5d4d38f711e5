package classifier

import api "github.com/jobkeeper/application-tracker/api/v1alpha1"

// FieldKeywords holds the match terms for one lifecycle event, split by the
// email field they apply to. Matching is case-insensitive substring search.
type FieldKeywords struct {
	Subject []string
	Sender  []string
	Body    []string
}

type RuleTable map[api.EventType]FieldKeywords

// classificationOrder fixes which event wins a score tie.
var classificationOrder = []api.EventType{
	api.EventTypeApplied,
	api.EventTypeRejected,
	api.EventTypeInterview,
	api.EventTypeOffer,
}

// DefaultRuleTable covers the English and German phrasing common in
// application confirmations, rejections, interview invites and offers.
func DefaultRuleTable() RuleTable {
	return RuleTable{
		api.EventTypeApplied: {
			Subject: []string{
				"application received", "thank you for applying", "application confirmation",
				"we received your application", "bewerbung eingegangen", "bewerbungseingang",
			},
			Sender: []string{"noreply", "no-reply", "recruiting", "talent", "hr@", "jobs@", "careers@"},
			Body:   []string{"application has been received", "reviewing your application"},
		},
		api.EventTypeRejected: {
			Subject: []string{
				"unfortunately", "not moving forward", "other candidates", "not selected",
				"absage", "leider", "andere kandidaten",
			},
			Sender: []string{"noreply", "no-reply", "recruiting", "talent", "hr@"},
			Body: []string{
				"regret to inform", "not be moving forward", "other candidates",
				"decided to pursue", "nicht berücksichtigen",
			},
		},
		api.EventTypeInterview: {
			Subject: []string{"interview", "next steps", "schedule", "gespräch", "vorstellungsgespräch"},
			Sender:  []string{"recruiting", "talent", "hr@", "team@"},
			Body: []string{
				"interview", "schedule a call", "meet with", "talk with", "gespräch",
				"kennenlernen",
			},
		},
		api.EventTypeOffer: {
			Subject: []string{"offer", "congratulations", "welcome to", "angebot", "glückwunsch"},
			Sender:  []string{"hr@", "recruiting", "talent"},
			Body:    []string{"pleased to offer", "offer letter", "welcome to our team", "angebot"},
		},
	}
}

// DefaultCompanyPatterns match the usual ways a company names itself in
// recruiting mail. The first capture group carries the name.
func DefaultCompanyPatterns() []string {
	return []string{
		`(?:from|at|with|bei)\s+([A-Z][A-Za-z0-9\s&]+(?:GmbH|AG|Inc|LLC|Ltd|Corporation|Corp)?)`,
		`([A-Z][A-Za-z0-9\s&]+(?:GmbH|AG|Inc|LLC|Ltd|Corporation|Corp))`,
	}
}

// DefaultRolePatterns match job titles; the whole match is the title.
func DefaultRolePatterns() []string {
	return []string{
		`(?i)(?:position|role|for|als)\s+([A-Z][A-Za-z\s]+(?:Engineer|Developer|Manager|Analyst|Designer|Consultant))`,
		`(?i)(Senior|Junior|Lead|Principal|Staff)?\s*(Software|Data|Product|Project|Marketing|Sales)\s+(Engineer|Developer|Manager|Analyst|Designer|Scientist)`,
	}
}
