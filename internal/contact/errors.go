package contact

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration marks a submission that failed because the server is
	// missing a required setting, typically the mail credential.
	ErrConfiguration = errors.New("configuration error")
	// ErrDelivery marks any other failure of the side effect.
	ErrDelivery = errors.New("delivery failed")
)

const MsgMissingFields = "Missing required fields"

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e.Message + ": " + strings.Join(keys, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
