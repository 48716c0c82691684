package embedding

import (
	"errors"
	"fmt"
)

// ErrVocabularyMismatch signals an attempt to transform documents
// against a vocabulary fitted on a different corpus. Silently
// embedding against a stale vocabulary would corrupt downstream
// clustering without a visible symptom, so this fails loudly.
var ErrVocabularyMismatch = errors.New("vocabulary was fitted on a different corpus")

// NotFittedError reports use of a vectorizer before Fit.
type NotFittedError struct {
	Op string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("vectorizer is not fitted: cannot %s", e.Op)
}
