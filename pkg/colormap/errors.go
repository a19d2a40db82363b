package colormap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColormapNotFound is matched by DomainErrors raised for unknown colormap names.
	ErrColormapNotFound = errors.New("colormap not found")

	// ErrColormapExists is returned when adding a colormap under a name already in use.
	ErrColormapExists = errors.New("colormap already exists")
)

// Severity grades a validation finding.
type Severity int

const (
	// SeverityError rejects the definition.
	SeverityError Severity = iota
	// SeverityWarning is reported but does not reject the definition.
	SeverityWarning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// ValidationError is a single schema rule violation.
type ValidationError struct {
	Path     string
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Severity == SeverityWarning {
		msg += " (warning)"
	}
	return msg
}

// ValidationErrors collects every violation found in one validation pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	if len(v) == 1 {
		return "validation failed: " + msgs[0]
	}
	return fmt.Sprintf("validation failed with %d problems: %s", len(v), strings.Join(msgs, "; "))
}

// HasErrors reports whether any entry has SeverityError.
func (v ValidationErrors) HasErrors() bool {
	for _, e := range v {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the SeverityError entries.
func (v ValidationErrors) Errors() ValidationErrors {
	return v.filter(SeverityError)
}

// Warnings returns only the SeverityWarning entries.
func (v ValidationErrors) Warnings() ValidationErrors {
	return v.filter(SeverityWarning)
}

func (v ValidationErrors) filter(s Severity) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Severity == s {
			out = append(out, e)
		}
	}
	return out
}

func (v *ValidationErrors) add(path, format string, args ...any) {
	*v = append(*v, ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *ValidationErrors) warn(path, format string, args ...any) {
	*v = append(*v, ValidationError{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
}

func (v ValidationErrors) errorCount() int {
	n := 0
	for _, e := range v {
		if e.Severity == SeverityError {
			n++
		}
	}
	return n
}

// LookupError reports a category absent from a categorical colormap.
type LookupError struct {
	Colormap string
	Key      string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("category %q not found in colormap %q", e.Key, e.Colormap)
}

// DomainError reports a value the resolver cannot place, or an unknown colormap.
type DomainError struct {
	Colormap string
	Value    any
	Reason   string
	err      error
}

func (e *DomainError) Error() string {
	if e.Value == nil && e.err != nil {
		return fmt.Sprintf("%s: %q", e.Reason, e.Colormap)
	}
	return fmt.Sprintf("colormap %q: %s (value: %v)", e.Colormap, e.Reason, e.Value)
}

// Unwrap exposes ErrColormapNotFound for unknown names.
func (e *DomainError) Unwrap() error {
	return e.err
}

func notFound(name string) error {
	return &DomainError{Colormap: name, Reason: "colormap not found", err: ErrColormapNotFound}
}

// CapacityError reports a request for more distinct colours than a palette holds.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("requested %d distinct colours but only %d are available", e.Requested, e.Available)
}
