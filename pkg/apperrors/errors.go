package apperrors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrProfileCorrupt    = errors.New("stored profile is corrupt")
	ErrTranslationFailed = errors.New("no SQL could be extracted from the model response")
	ErrStatementBlocked  = errors.New("statement blocked by query guard")
	ErrInvalidFeedback   = errors.New("invalid feedback payload")
	ErrInvalidAssessment = errors.New("invalid assessment submission")
)
