// Package filter decides which listed tests are run.
//
// A Builder holds the user's filter settings. Every listing pass builds a
// fresh Matcher from it, since matchers carry per-pass state (the partition
// counter) that must not leak between the ignored and non-ignored passes.
package filter

import (
	"fmt"
	"strings"

	"github.com/perfgo/nextest/model"
)

// RunIgnored selects how ignored tests are treated.
type RunIgnored int

const (
	// RunIgnoredDefault runs only non-ignored tests.
	RunIgnoredDefault RunIgnored = iota
	// RunIgnoredOnly runs only ignored tests.
	RunIgnoredOnly
	// RunIgnoredAll runs both.
	RunIgnoredAll
)

func (r RunIgnored) String() string {
	switch r {
	case RunIgnoredOnly:
		return "ignored-only"
	case RunIgnoredAll:
		return "all"
	default:
		return "default"
	}
}

// ParseRunIgnored parses "default", "ignored-only" or "all".
func ParseRunIgnored(s string) (RunIgnored, error) {
	switch s {
	case "", "default":
		return RunIgnoredDefault, nil
	case "ignored-only":
		return RunIgnoredOnly, nil
	case "all":
		return RunIgnoredAll, nil
	}
	return RunIgnoredDefault, fmt.Errorf("unknown run-ignored mode %q (expected default, ignored-only or all)", s)
}

// Matcher evaluates the filter for one listing pass.
type Matcher interface {
	FilterMatch(name string, ignored bool) model.FilterMatch
}

// Builder holds filter settings and builds matchers from them.
type Builder struct {
	runIgnored  RunIgnored
	partitioner *PartitionerBuilder
	patterns    []string
}

// NewBuilder returns a filter builder. A test matches if its name contains
// any of the patterns; no patterns match every test.
func NewBuilder(runIgnored RunIgnored, partitioner *PartitionerBuilder, patterns []string) *Builder {
	return &Builder{
		runIgnored:  runIgnored,
		partitioner: partitioner,
		patterns:    append([]string{}, patterns...),
	}
}

// Any returns a builder matching every test permitted by runIgnored.
func Any(runIgnored RunIgnored) *Builder {
	return NewBuilder(runIgnored, nil, nil)
}

// Build returns a new matcher with fresh partition state.
func (b *Builder) Build() Matcher {
	m := &matcher{builder: b}
	if b.partitioner != nil {
		m.partitioner = b.partitioner.Build()
	}
	return m
}

type matcher struct {
	builder     *Builder
	partitioner Partitioner
}

func (m *matcher) FilterMatch(name string, ignored bool) model.FilterMatch {
	switch m.builder.runIgnored {
	case RunIgnoredDefault:
		if ignored {
			return model.Mismatch(model.MismatchReasonIgnored)
		}
	case RunIgnoredOnly:
		if !ignored {
			return model.Mismatch(model.MismatchReasonIgnored)
		}
	}

	if !m.matchesPatterns(name) {
		return model.Mismatch(model.MismatchReasonString)
	}

	// Only tests that got this far count towards a partition.
	if m.partitioner != nil && !m.partitioner.TestMatches(name) {
		return model.Mismatch(model.MismatchReasonPartition)
	}

	return model.Matches()
}

func (m *matcher) matchesPatterns(name string) bool {
	if len(m.builder.patterns) == 0 {
		return true
	}
	for _, pattern := range m.builder.patterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
