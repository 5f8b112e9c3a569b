package domain

import (
	"context"
	"errors"
)

// Data errors abort a pipeline run before any model sees the data.
var (
	ErrEmptyDataset  = errors.New("dataset is empty after cleaning")
	ErrMissingColumn = errors.New("required column missing")
	ErrUnknownField  = errors.New("unknown field")
)

// ErrInsufficientData is returned when the chronological split cannot leave
// enough evaluation rows to score a model.
var ErrInsufficientData = errors.New("dataset too small for chronological split")

// Contract errors: a model, scaler or feature order from one training run
// was combined with another.
var (
	ErrFeatureOrderMismatch = errors.New("feature order does not match training")
	ErrLineageMismatch      = errors.New("model does not belong to this training run")
)

// Request errors are scoped to a single inference or commentary call.
var (
	ErrMissingField = errors.New("record is missing a required field")
	ErrUnknownModel = errors.New("unknown model")
)

type ErrorKind string

const (
	KindData     ErrorKind = "data"
	KindSplit    ErrorKind = "split"
	KindContract ErrorKind = "contract"
	KindRequest  ErrorKind = "request"
	KindCanceled ErrorKind = "canceled"
	KindInternal ErrorKind = "internal"
)

// Classify maps an error to its taxonomy bucket.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyDataset), errors.Is(err, ErrMissingColumn):
		return KindData
	case errors.Is(err, ErrInsufficientData):
		return KindSplit
	case errors.Is(err, ErrFeatureOrderMismatch), errors.Is(err, ErrLineageMismatch):
		return KindContract
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrUnknownModel), errors.Is(err, ErrUnknownField):
		return KindRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}
