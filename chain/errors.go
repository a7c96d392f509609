package chain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrEnrichment indicates the value-producing step for a context
	// field failed; the inner service was not invoked.
	ErrEnrichment = errors.New("context enrichment failed")

	// ErrNoCredentials indicates a request carried no credentials where
	// an authorization enrichment required them.
	ErrNoCredentials = errors.New("no credentials presented")
)

// EnrichmentError reports which field's enrichment failed and why. It is
// returned by AddField in place of invoking the inner service.
type EnrichmentError struct {
	// Field is the label of the context field that could not be produced.
	Field string

	// Cause is the error from the value-producing step.
	Cause error
}

// Error implements the error interface.
func (e *EnrichmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enriching context field %q: %v", e.Field, e.Cause)
	}

	return fmt.Sprintf("enriching context field %q failed", e.Field)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *EnrichmentError) Unwrap() error {
	return e.Cause
}

// Is matches the ErrEnrichment sentinel so callers can classify the failure
// without knowing the field.
func (e *EnrichmentError) Is(target error) bool {
	return target == ErrEnrichment
}

// IsEnrichment reports whether err is an enrichment failure.
func IsEnrichment(err error) bool {
	return errors.Is(err, ErrEnrichment)
}
