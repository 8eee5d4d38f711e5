package classifier_test

import (
	"testing"

	api "github.com/jobkeeper/application-tracker/api/v1alpha1"
	"github.com/jobkeeper/application-tracker/internal/classifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAppliedHighConfidence(t *testing.T) {
	c := classifier.New()

	result := c.Classify(
		"Application received - Acme Corp",
		"noreply@acme.example",
		"Your application has been received and we are reviewing your application.",
	)

	assert.Equal(t, api.EventTypeApplied, result.EventType)
	assert.Equal(t, api.ConfidenceHigh, result.Confidence)
	assert.GreaterOrEqual(t, result.Score, 5)
}

func TestClassifyRejection(t *testing.T) {
	c := classifier.New()

	result := c.Classify(
		"Unfortunately we are not moving forward",
		"recruiting@acme.example",
		"We regret to inform you that we have decided to pursue other candidates.",
	)

	assert.Equal(t, api.EventTypeRejected, result.EventType)
	assert.Equal(t, api.ConfidenceHigh, result.Confidence)
}

func TestClassifyInterviewInvite(t *testing.T) {
	c := classifier.New()

	result := c.Classify(
		"Interview - next steps",
		"talent@acme.example",
		"We would like to schedule a call with you.",
	)

	assert.Equal(t, api.EventTypeInterview, result.EventType)
	assert.Equal(t, api.ConfidenceHigh, result.Confidence)
}

func TestClassifyNewsletterIsOther(t *testing.T) {
	c := classifier.New()

	result := c.Classify(
		"Weekly digest: top stories",
		"newsletter@news.example",
		"Here is what happened this week.",
	)

	assert.Equal(t, api.EventTypeOther, result.EventType)
	assert.Equal(t, api.ConfidenceLow, result.Confidence)
	assert.Equal(t, 0, result.Score)
}

func TestClassifyTieBreak(t *testing.T) {
	c := classifier.New()

	// one subject keyword each for Applied and Interview
	result := c.Classify(
		"Application received: interview",
		"someone@acme.example",
		"",
	)

	assert.Equal(t, api.EventTypeApplied, result.EventType)
}

func TestClassifyGermanKeywords(t *testing.T) {
	c := classifier.New()

	result := c.Classify(
		"Ihre Bewerbung: Absage",
		"hr@firma.example",
		"Leider können wir Sie nicht berücksichtigen.",
	)

	assert.Equal(t, api.EventTypeRejected, result.EventType)
}

func TestExtractCompany(t *testing.T) {
	c := classifier.New()

	company := c.ExtractCompany("Your application at TechFlow GmbH", "")
	require.NotNil(t, company)
	assert.Equal(t, "TechFlow GmbH", *company)
}

func TestExtractCompanyCollapsesWhitespace(t *testing.T) {
	c := classifier.New()

	company := c.ExtractCompany("", "Thank you for applying at Initech \t Corp")
	require.NotNil(t, company)
	assert.Equal(t, "Initech Corp", *company)
}

func TestExtractCompanyTooShort(t *testing.T) {
	c := classifier.New()

	assert.Nil(t, c.ExtractCompany("hello there", "nothing to see"))
}

func TestExtractRole(t *testing.T) {
	c := classifier.New()

	role := c.ExtractRole("Interview invitation", "We enjoyed speaking with you, Senior Software Engineer.")
	require.NotNil(t, role)
	assert.Equal(t, "Senior Software Engineer", *role)
}

func TestExtractRoleNone(t *testing.T) {
	c := classifier.New()

	assert.Nil(t, c.ExtractRole("Lunch on friday?", "See you at noon."))
}

func TestExtractMetadata(t *testing.T) {
	c := classifier.New()

	meta := c.ExtractMetadata(
		"Application received at DataWorks GmbH.",
		"noreply@dataworks.example",
		"Your Data Engineer application has been received.",
	)

	assert.Equal(t, api.EventTypeApplied, meta.EventType)
	require.NotNil(t, meta.Company)
	assert.Equal(t, "DataWorks GmbH", *meta.Company)
	require.NotNil(t, meta.RoleTitle)
	assert.Equal(t, "Data Engineer", *meta.RoleTitle)
}
