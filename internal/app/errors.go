package app

import (
	"errors"
	"strings"

	"github.com/autumnleaf-ra/Anime-API/internal/ports"
)

var (
	ErrNotFound     = ports.ErrNotFound
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError signale un payload mal formé, détecté avant tout accès au dataset.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return ErrInvalidInput.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalidInput(fields []string, messages ...string) *ValidationError {
	return &ValidationError{Message: strings.Join(messages, "; "), Fields: fields}
}

// NotFoundError est le résultat attendu d'une requête valide sans correspondance.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Message == "" {
		return ErrNotFound.Error()
	}
	return e.Message
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(msg string) *NotFoundError {
	return &NotFoundError{Message: msg}
}

// CodedError porte un code d'erreur stable pour les défaillances internes
// (dataset illisible, JSON invalide, ...).
//
// Exemples de codes: dataset_unavailable, internal_error.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidInput
	OutcomeNotFound
	OutcomeInternal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}

// Classify ramène une erreur à l'une des issues possibles d'une requête.
// Une CodedError reste interne quelle que soit la cause qu'elle enveloppe.
func Classify(err error) Outcome {
	var coded *CodedError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &coded):
		return OutcomeInternal
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeInternal
	}
}
