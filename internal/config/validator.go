package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgc-network/smart/pkg/types"
)

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config [%s]: %s", e.Field, e.Message)
}

var (
	logLevels      = []string{"debug", "info", "warn", "error", "panic", "fatal"}
	contractLevels = []string{"trace", "debug", "info", "warn", "warning", "error"}
)

// ValidateConfig rejects values the per-area resolvers would otherwise drop
// silently in favour of a default.
func ValidateConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}
	var errors []error

	if l := appConfig.Log; l != nil {
		if l.Level != nil && !oneOf(*l.Level, logLevels) {
			errors = append(errors, &ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("%q is not one of %s", *l.Level, strings.Join(logLevels, ", ")),
			})
		}
		if l.ContractLevel != nil && !oneOf(*l.ContractLevel, contractLevels) {
			errors = append(errors, &ValidationError{
				Field:   "log.contract_level",
				Message: fmt.Sprintf("%q is not one of %s", *l.ContractLevel, strings.Join(contractLevels, ", ")),
			})
		}
	}

	if e := appConfig.Engine; e != nil {
		if e.ExecutionTimeout != nil {
			if err := positiveDuration(*e.ExecutionTimeout); err != nil {
				errors = append(errors, &ValidationError{Field: "engine.execution_timeout", Message: err.Error()})
			}
		}
		if e.MaxCallDepth != nil && *e.MaxCallDepth < 0 {
			errors = append(errors, &ValidationError{Field: "engine.max_call_depth", Message: "must be >= 0"})
		}
		if e.ArenaPages != nil && e.MaxMemoryPages != nil && *e.ArenaPages >= *e.MaxMemoryPages {
			errors = append(errors, &ValidationError{
				Field:   "engine.arena_pages",
				Message: fmt.Sprintf("arena of %d pages leaves no room under max_memory_pages %d", *e.ArenaPages, *e.MaxMemoryPages),
			})
		}
	}

	if s := appConfig.Storage; s != nil && s.CacheLifeWindow != nil {
		if err := positiveDuration(*s.CacheLifeWindow); err != nil {
			errors = append(errors, &ValidationError{Field: "storage.cache_life_window", Message: err.Error()})
		}
	}

	if ev := appConfig.Event; ev != nil && ev.HistorySize != nil && *ev.HistorySize < 0 {
		errors = append(errors, &ValidationError{Field: "event.history_size", Message: "must be >= 0"})
	}

	if len(errors) > 0 {
		return &ValidationErrors{Errors: errors}
	}
	return nil
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("configuration is invalid:")
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Error())
	}
	return b.String()
}

func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

func oneOf(value string, allowed []string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func positiveDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a duration (e.g. \"10s\")", s)
	}
	if d <= 0 {
		return fmt.Errorf("%q must be positive", s)
	}
	return nil
}
