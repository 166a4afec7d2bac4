package jwt

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrTimeFormat matches a *ConfigError raised for a duration literal
	// that is not "<digits><s|m|h|d>".
	ErrTimeFormat = &ConfigError{Kind: KindTimeFormat}
	// ErrTimeUnit matches a *ConfigError raised for an unsupported duration unit.
	ErrTimeUnit = &ConfigError{Kind: KindTimeUnit}
	// ErrEncoding matches a *ConfigError raised for an unsupported signature encoding.
	ErrEncoding = &ConfigError{Kind: KindEncoding}
	// ErrUnknownHash matches a *ConfigError raised for a missing or unknown hash algorithm.
	ErrUnknownHash = &ConfigError{Kind: KindUnknownHash}
)

// ConfigError reports a caller misconfiguration, e.g. a malformed duration literal.
// It is returned as an error by Sign, Verify and Refresh,
// unlike token validation failures which are reported through VerifyResult.
type ConfigError struct {
	Kind Kind
	// Err holds optional detail, e.g. the rejected value.
	Err error
}

func newConfigError(kind Kind, detail error) *ConfigError {
	err := &ConfigError{Kind: kind, Err: detail}
	d := Describe(kind)
	entry := logger().WithFields(logrus.Fields{
		"title":  d.Title,
		"name":   d.Name,
		"status": d.StatusCode,
	})
	if detail != nil {
		entry = entry.WithError(detail)
	}
	entry.Error(d.Message)
	return err
}

func (e *ConfigError) Error() string {
	msg := "jwt: " + e.Kind.Message()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Title returns the diagnostic title.
func (e *ConfigError) Title() string { return Describe(e.Kind).Title }

// Name returns the short diagnostic name.
func (e *ConfigError) Name() string { return Describe(e.Kind).Name }

// StatusCode returns the HTTP-like classification, always DefaultStatusCode.
func (e *ConfigError) StatusCode() int { return DefaultStatusCode }

func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports whether target is a *ConfigError of the same Kind.
func (e *ConfigError) Is(target error) bool {
	var t *ConfigError
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// OptionError is returned by SignOptionsFromMap and VerifyOptionsFromMap
// when a loosely typed option holds a value of the wrong type.
type OptionError struct {
	Kind  Kind
	Field string
	Value any
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("jwt: %s: %s (%T)", e.Field, e.Kind.Message(), e.Value)
}
