package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"entity-projector/internal/common"
)

// Diagnostics holds every problem found while checking entity declarations.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Entity names the entity declaration this relates to (if any).
	Entity string
	// Name identifies the field, alias or aux slot this relates to (if any).
	Name string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, entity, name string, suggestions []string) {
	diag := Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		Entity:      entity,
		Name:        name,
		Suggestions: suggestions,
	}

	switch sev {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError records a problem that keeps the declaration from being built.
func (d *Diagnostics) AddError(code, message, entity, name string, suggestions ...string) {
	d.add(DiagnosticError, code, message, entity, name, suggestions)
}

// AddWarning records a problem that does not keep the declaration from being
// built, e.g. a definition for a name that is not a field.
func (d *Diagnostics) AddWarning(code, message, entity, name string, suggestions ...string) {
	d.add(DiagnosticWarning, code, message, entity, name, suggestions)
}

// AddInfo records a note, such as which Go member supplies a field.
func (d *Diagnostics) AddInfo(code, message, entity, name string) {
	d.add(DiagnosticInfo, code, message, entity, name, nil)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// ForEntity returns the diagnostics that relate to the named entity.
func (d *Diagnostics) ForEntity(entity string) *Diagnostics {
	out := &Diagnostics{}

	for _, diag := range d.All() {
		if diag.Entity == entity {
			out.add(diag.Severity, diag.Code, diag.Message, diag.Entity, diag.Name, diag.Suggestions)
		}
	}

	return out
}

// Summary counts errors and warnings, e.g. "2 error(s), 1 warning(s)".
func (d *Diagnostics) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", len(d.Errors), len(d.Warnings))
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Entity != "" {
		prefix = append(prefix, "["+d.Entity+"]")
	}

	if d.Name != "" {
		prefix = append(prefix, d.Name)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
