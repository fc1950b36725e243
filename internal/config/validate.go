package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyTitle indicates a missing document title
	ErrEmptyTitle = errors.New("empty title")

	// ErrEmptyOutput indicates a missing output path
	ErrEmptyOutput = errors.New("empty output path")

	// ErrNoIncludePatterns indicates there are no input patterns at all
	ErrNoIncludePatterns = errors.New("no include patterns")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// Validate checks that the configuration is valid and complete. Invalid
// configuration is rejected before any extraction begins.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Title) == "" {
		errs = append(errs, fmt.Errorf("%w: title is required", ErrEmptyTitle))
	}

	if strings.TrimSpace(cfg.Output) == "" {
		errs = append(errs, fmt.Errorf("%w: output path is required", ErrEmptyOutput))
	}

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrNoIncludePatterns))
	}

	for _, pattern := range cfg.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: include %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: exclude %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if cfg.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
