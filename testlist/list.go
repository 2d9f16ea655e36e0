// Package testlist builds and queries lists of test instances, obtained by
// running the self-listing mode of every test artifact.
//
// The main data structure in this package is TestList.
package testlist

import (
	"context"
	"iter"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/perfgo/nextest/filter"
	"github.com/perfgo/nextest/metadata"
	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/runner"
)

// FilterBuilder builds a fresh filter for every listing pass.
type FilterBuilder interface {
	Build() filter.Matcher
}

// TestSuite is the set of tests within a single test binary.
type TestSuite struct {
	// Unique identifier for the binary
	BinaryID string
	// Package the binary belongs to
	Package *metadata.PackageMetadata
	// Target name as defined in the package manifest
	BinaryName string
	// Directory the binary is executed in
	Cwd string
	// Platform the binary was built for
	BuildPlatform model.BuildPlatform
	// Test case names and what is known about them
	Testcases map[string]model.RustTestCaseSummary
}

// TestNames returns the names of all tests in the suite, sorted.
func (s *TestSuite) TestNames() []string {
	names := make([]string, 0, len(s.Testcases))
	for name := range s.Testcases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TestList is the list of all tests across all binaries, keyed by binary
// path. It is read-only once built and safe for concurrent use.
type TestList struct {
	testCount int
	suites    map[string]*TestSuite
	// sorted keys of suites
	paths []string

	// computed on first access
	skipOnce  sync.Once
	skipCount int
}

// Option configures how a TestList is built.
type Option func(*builder)

type builder struct {
	logger zerolog.Logger
	jobs   int
}

// WithLogger sets the logger used while listing.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

// WithJobs sets how many binaries are listed concurrently. Values below 1
// list one binary at a time.
func WithJobs(jobs int) Option {
	return func(b *builder) {
		b.jobs = jobs
	}
}

// New runs the self-listing mode of every artifact, with and without
// --ignored, and applies the filter to the results. r may be nil if no
// binary needs a runner.
func New(ctx context.Context, artifacts []TestArtifact, filterBuilder FilterBuilder, r *runner.TargetRunner, opts ...Option) (*TestList, error) {
	b := &builder{
		logger: zerolog.Nop(),
		jobs:   1,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.jobs < 1 {
		b.jobs = 1
	}

	suites := make([]*TestSuite, len(artifacts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)
	for i := range artifacts {
		artifact := &artifacts[i]
		g.Go(func() error {
			b.logger.Debug().
				Str("binary_id", artifact.BinaryID).
				Str("binary", artifact.BinaryPath).
				Str("cwd", artifact.Cwd).
				Msg("Listing tests")

			nonIgnored, ignored, err := artifact.runListing(gctx, r)
			if err != nil {
				return err
			}
			suite, err := processOutput(artifact, filterBuilder, nonIgnored, ignored)
			if err != nil {
				return err
			}

			b.logger.Debug().
				Str("binary_id", artifact.BinaryID).
				Int("tests", len(suite.Testcases)).
				Msg("Listed tests")

			suites[i] = suite
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newTestList(artifacts, suites), nil
}

// ArtifactOutput is the self-listing output of an artifact captured out of
// band.
type ArtifactOutput struct {
	Artifact   TestArtifact
	NonIgnored string
	Ignored    string
}

// NewWithOutputs builds a test list from already captured self-listing
// outputs, without running any process.
func NewWithOutputs(outputs []ArtifactOutput, filterBuilder FilterBuilder) (*TestList, error) {
	artifacts := make([]TestArtifact, len(outputs))
	suites := make([]*TestSuite, len(outputs))
	for i := range outputs {
		artifacts[i] = outputs[i].Artifact
		suite, err := processOutput(&artifacts[i], filterBuilder, outputs[i].NonIgnored, outputs[i].Ignored)
		if err != nil {
			return nil, err
		}
		suites[i] = suite
	}
	return newTestList(artifacts, suites), nil
}

// newTestList merges suites by binary path. A later suite with the same
// path replaces an earlier one.
func newTestList(artifacts []TestArtifact, suites []*TestSuite) *TestList {
	l := &TestList{
		suites: make(map[string]*TestSuite, len(suites)),
	}
	for i, suite := range suites {
		path := artifacts[i].BinaryPath
		if prev, ok := l.suites[path]; ok {
			l.testCount -= len(prev.Testcases)
		} else {
			l.paths = append(l.paths, path)
		}
		l.suites[path] = suite
		l.testCount += len(suite.Testcases)
	}
	sort.Strings(l.paths)
	return l
}

func processOutput(artifact *TestArtifact, filterBuilder FilterBuilder, nonIgnored, ignored string) (*TestSuite, error) {
	tests := make(map[string]model.RustTestCaseSummary)

	// Each pass gets its own filter, so that partitioning in one pass
	// doesn't affect the other.
	nonIgnoredNames, err := parseListOutput(nonIgnored)
	if err != nil {
		return nil, err
	}
	nonIgnoredFilter := filterBuilder.Build()
	for _, name := range nonIgnoredNames {
		tests[name] = model.RustTestCaseSummary{
			Ignored:     false,
			FilterMatch: nonIgnoredFilter.FilterMatch(name, false),
		}
	}

	ignoredNames, err := parseListOutput(ignored)
	if err != nil {
		return nil, err
	}
	ignoredFilter := filterBuilder.Build()
	for _, name := range ignoredNames {
		// A name listed by both passes is overwritten here.
		tests[name] = model.RustTestCaseSummary{
			Ignored:     true,
			FilterMatch: ignoredFilter.FilterMatch(name, true),
		}
	}

	return &TestSuite{
		BinaryID:      artifact.BinaryID,
		Package:       artifact.Package,
		BinaryName:    artifact.BinaryName,
		Cwd:           artifact.Cwd,
		BuildPlatform: artifact.BuildPlatform,
		Testcases:     tests,
	}, nil
}

// TestCount returns the total number of tests across all binaries.
func (l *TestList) TestCount() int {
	return l.testCount
}

// SkipCount returns the number of tests the filter rejected. It is computed
// once, on first use.
func (l *TestList) SkipCount() int {
	l.skipOnce.Do(func() {
		count := 0
		for instance := range l.Tests() {
			if !instance.Info().FilterMatch.IsMatch() {
				count++
			}
		}
		l.skipCount = count
	})
	return l.skipCount
}

// RunCount returns the number of tests that aren't skipped. RunCount +
// SkipCount always equals TestCount.
func (l *TestList) RunCount() int {
	return l.testCount - l.SkipCount()
}

// BinaryCount returns the number of binaries in the list.
func (l *TestList) BinaryCount() int {
	return len(l.suites)
}

// Get returns the suite of the binary at path.
func (l *TestList) Get(path string) (*TestSuite, bool) {
	suite, ok := l.suites[path]
	return suite, ok
}

// Suites iterates over the binaries in path order.
func (l *TestList) Suites() iter.Seq2[string, *TestSuite] {
	return func(yield func(string, *TestSuite) bool) {
		for _, path := range l.paths {
			if !yield(path, l.suites[path]) {
				return
			}
		}
	}
}

// Tests iterates over every test of every binary, in binary path then test
// name order.
func (l *TestList) Tests() iter.Seq[TestInstance] {
	return func(yield func(TestInstance) bool) {
		for _, path := range l.paths {
			for _, name := range l.suites[path].TestNames() {
				if !yield(TestInstance{name: name, binaryPath: path, list: l}) {
					return
				}
			}
		}
	}
}
