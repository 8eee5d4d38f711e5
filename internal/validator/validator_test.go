package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type importForm struct {
	Status      string `validate:"omitempty,status"`
	JobURL      string `validate:"omitempty,url"`
	AppliedDate string `validate:"omitempty,observed_date"`
}

func newImportValidator() *Validator {
	v := NewValidator()
	v.Register(NewImportValidationRules()...)
	return v
}

func TestStatusValidation(t *testing.T) {
	v := newImportValidator()

	for _, status := range []string{"Draft", "Applied", "Interview", "Offer", "Rejected", "Other"} {
		require.NoError(t, v.Struct(importForm{Status: status}), status)
	}

	require.Error(t, v.Struct(importForm{Status: "applied"}))
	require.Error(t, v.Struct(importForm{Status: "Hired"}))
	require.NoError(t, v.Struct(importForm{}))
}

func TestObservedDateValidation(t *testing.T) {
	v := newImportValidator()

	require.NoError(t, v.Struct(importForm{AppliedDate: "2026-02-01"}))
	require.NoError(t, v.Struct(importForm{AppliedDate: "2026-02-01T09:00:00Z"}))
	require.Error(t, v.Struct(importForm{AppliedDate: "01.02.2026"}))
	require.Error(t, v.Struct(importForm{AppliedDate: "soon"}))
}

func TestJobURLValidation(t *testing.T) {
	v := newImportValidator()

	require.NoError(t, v.Struct(importForm{JobURL: "https://jobs.example/1"}))
	require.Error(t, v.Struct(importForm{JobURL: "not a url"}))
}
