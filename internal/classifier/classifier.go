package classifier

import (
	"regexp"
	"strings"

	api "github.com/jobkeeper/application-tracker/api/v1alpha1"
	"go.uber.org/zap"
)

const (
	highConfidenceThreshold   = 5
	mediumConfidenceThreshold = 3
	minExtractedLength        = 3
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Result is the outcome of scoring one email against the rule table.
type Result struct {
	EventType  api.EventType
	Confidence api.Confidence
	Score      int
}

// Metadata bundles the classification with the company and role title
// extracted from the same email, when present.
type Metadata struct {
	Result
	Company   *string
	RoleTitle *string
}

type Classifier struct {
	rules           RuleTable
	order           []api.EventType
	companyPatterns []*regexp.Regexp
	rolePatterns    []*regexp.Regexp
}

func New() *Classifier {
	return NewWithRules(DefaultRuleTable())
}

func NewWithRules(rules RuleTable) *Classifier {
	c := &Classifier{
		rules: rules,
		order: classificationOrder,
	}
	for _, p := range DefaultCompanyPatterns() {
		c.companyPatterns = append(c.companyPatterns, regexp.MustCompile(p))
	}
	for _, p := range DefaultRolePatterns() {
		c.rolePatterns = append(c.rolePatterns, regexp.MustCompile(p))
	}
	return c
}

// Classify scores the email per field: a subject hit counts 3, a sender hit
// 2, a body hit 1. The event with the highest total wins, ties resolved by
// the fixed classification order. A zero score falls through to Other.
func (c *Classifier) Classify(subject, sender, body string) Result {
	subject = strings.ToLower(subject)
	sender = strings.ToLower(sender)
	body = strings.ToLower(body)

	scores := make(map[api.EventType]int, len(c.order))
	for eventType, keywords := range c.rules {
		for _, kw := range keywords.Subject {
			if strings.Contains(subject, strings.ToLower(kw)) {
				scores[eventType] += 3
			}
		}
		for _, kw := range keywords.Sender {
			if strings.Contains(sender, strings.ToLower(kw)) {
				scores[eventType] += 2
			}
		}
		for _, kw := range keywords.Body {
			if strings.Contains(body, strings.ToLower(kw)) {
				scores[eventType] += 1
			}
		}
	}

	maxScore := 0
	eventType := api.EventTypeOther
	for _, et := range c.order {
		if scores[et] > maxScore {
			maxScore = scores[et]
			eventType = et
		}
	}

	if maxScore == 0 {
		return Result{EventType: api.EventTypeOther, Confidence: api.ConfidenceLow, Score: 0}
	}

	confidence := api.ConfidenceLow
	switch {
	case maxScore >= highConfidenceThreshold:
		confidence = api.ConfidenceHigh
	case maxScore >= mediumConfidenceThreshold:
		confidence = api.ConfidenceMedium
	}

	zap.S().Named("classifier").Debugf("classified as %s with %s confidence (score: %d)", eventType, confidence, maxScore)

	return Result{EventType: eventType, Confidence: confidence, Score: maxScore}
}

// ExtractCompany pulls a company name out of the subject and body. The
// first pattern that yields a name longer than three characters wins.
func (c *Classifier) ExtractCompany(subject, body string) *string {
	text := subject + " " + body
	for _, re := range c.companyPatterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		company := whitespaceRe.ReplaceAllString(strings.TrimSpace(match[1]), " ")
		if len(company) > minExtractedLength {
			return &company
		}
	}
	return nil
}

// ExtractRole pulls a role title out of the subject and body. Unlike
// company extraction the whole match is kept, so qualifiers like
// "Senior" stay part of the title.
func (c *Classifier) ExtractRole(subject, body string) *string {
	text := subject + " " + body
	for _, re := range c.rolePatterns {
		match := re.FindString(text)
		if match == "" {
			continue
		}
		role := whitespaceRe.ReplaceAllString(strings.TrimSpace(match), " ")
		if len(role) > minExtractedLength {
			return &role
		}
	}
	return nil
}

// ExtractMetadata runs classification and both extractors in one pass.
func (c *Classifier) ExtractMetadata(subject, sender, body string) Metadata {
	return Metadata{
		Result:    c.Classify(subject, sender, body),
		Company:   c.ExtractCompany(subject, body),
		RoleTitle: c.ExtractRole(subject, body),
	}
}
