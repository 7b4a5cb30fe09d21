// Package schema validates question banks and answer sets.
package schema

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/dshills/healthcheck/internal/audit"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Bank for structural validity.
func Validate(b *audit.Bank) []ValidationError {
	var errs []ValidationError

	if b.Name == "" {
		errs = append(errs, ValidationError{"name", "required"})
	}
	if b.MaxPoints < 0 {
		errs = append(errs, ValidationError{"max_points", "must be >= 0"})
	}
	if len(b.Questions) == 0 {
		errs = append(errs, ValidationError{"questions", "at least one question required"})
	}

	// Validate questions
	questionIDs := make(map[int]bool)
	for i, q := range b.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if q.ID < 1 {
			errs = append(errs, ValidationError{prefix + ".id", "must be >= 1"})
		} else if questionIDs[q.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %d", q.ID)})
		} else {
			questionIDs[q.ID] = true
		}
		if q.Text == "" {
			errs = append(errs, ValidationError{prefix + ".text", "required"})
		}
		if q.MaxPoints < 0 {
			errs = append(errs, ValidationError{prefix + ".max_points", "must be >= 0"})
		}
		if len(q.Options) == 0 {
			errs = append(errs, ValidationError{prefix + ".options", "at least one option required"})
			continue
		}
		scorable := false
		for j, opt := range q.Options {
			op := fmt.Sprintf("%s.options[%d]", prefix, j)
			if opt.Text == "" {
				errs = append(errs, ValidationError{op + ".text", "required"})
			}
			if opt.Points < 0 {
				errs = append(errs, ValidationError{op + ".points", "must be >= 0"})
			} else if ceiling := b.Ceiling(q); opt.Points > ceiling {
				errs = append(errs, ValidationError{op + ".points", fmt.Sprintf("must be <= question ceiling %d", ceiling)})
			}
			if !opt.NA {
				scorable = true
			}
		}
		if !scorable {
			errs = append(errs, ValidationError{prefix + ".options", "at least one option must not be N/A"})
		}
	}

	// Validate tiers
	if len(b.Tiers) == 0 {
		errs = append(errs, ValidationError{"tiers", "at least one tier required"})
	}
	tierIDs := make(map[string]bool)
	prevBelow := 0
	for i, t := range b.Tiers {
		prefix := fmt.Sprintf("tiers[%d]", i)
		if t.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		} else if tierIDs[t.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", t.ID)})
		} else {
			tierIDs[t.ID] = true
		}
		if t.Title == "" {
			errs = append(errs, ValidationError{prefix + ".title", "required"})
		}
		if i == len(b.Tiers)-1 {
			if t.Below != 0 {
				errs = append(errs, ValidationError{prefix + ".below", "last tier must be unbounded"})
			}
		} else {
			switch {
			case t.Below < 1 || t.Below > 100:
				errs = append(errs, ValidationError{prefix + ".below", "must be between 1 and 100"})
			case t.Below <= prevBelow:
				errs = append(errs, ValidationError{prefix + ".below", fmt.Sprintf("must be greater than previous bound %d", prevBelow)})
			}
			if t.Below > prevBelow {
				prevBelow = t.Below
			}
		}
		errs = append(errs, validateCTA(prefix+".cta", t.CTA)...)
	}

	return errs
}

func validateCTA(prefix string, cta audit.CallToAction) []ValidationError {
	var errs []ValidationError
	if cta.Label == "" {
		errs = append(errs, ValidationError{prefix + ".label", "required"})
	}
	if cta.URL == "" {
		errs = append(errs, ValidationError{prefix + ".url", "required"})
		return errs
	}
	u, err := url.Parse(cta.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{prefix + ".url", fmt.Sprintf("must be an absolute http(s) URL, got %q", cta.URL)})
	}
	return errs
}

// ValidateAnswers reports answers that name unknown questions or select an
// option index outside the question's range.
func ValidateAnswers(b *audit.Bank, answers audit.AnswerSet) []ValidationError {
	ids := make([]int, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var errs []ValidationError
	for _, id := range ids {
		path := fmt.Sprintf("answers[%d]", id)
		q, ok := b.Question(id)
		if !ok {
			errs = append(errs, ValidationError{path, "unknown question"})
			continue
		}
		idx := answers[id]
		if _, ok := q.Option(idx); !ok {
			errs = append(errs, ValidationError{path, fmt.Sprintf("option index %d out of range [0, %d)", idx, len(q.Options))})
		}
	}
	return errs
}
