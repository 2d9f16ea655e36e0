package model

import (
	"fmt"
)

// BuildPlatform identifies the platform a test binary was built for.
type BuildPlatform string

const (
	// BuildPlatformHost is the machine doing the compiling. Proc-macro
	// test binaries are always built for it.
	BuildPlatformHost BuildPlatform = "host"
	// BuildPlatformTarget is the (possibly cross-compiled) execution target.
	BuildPlatformTarget BuildPlatform = "target"
)

func (p BuildPlatform) String() string {
	return string(p)
}

// ParseBuildPlatform parses "host" or "target".
func ParseBuildPlatform(s string) (BuildPlatform, error) {
	switch BuildPlatform(s) {
	case BuildPlatformHost, BuildPlatformTarget:
		return BuildPlatform(s), nil
	}
	return "", fmt.Errorf("unknown build platform %q (expected host or target)", s)
}

// UnmarshalText rejects anything but the two known platforms.
func (p *BuildPlatform) UnmarshalText(text []byte) error {
	parsed, err := ParseBuildPlatform(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MismatchReason explains why a test did not match the filter.
type MismatchReason string

const (
	MismatchReasonIgnored   MismatchReason = "ignored"
	MismatchReasonString    MismatchReason = "string"
	MismatchReasonPartition MismatchReason = "partition"
)

// FilterMatchStatus is the serialized tag of a FilterMatch.
type FilterMatchStatus string

const (
	FilterMatchStatusMatches  FilterMatchStatus = "matches"
	FilterMatchStatusMismatch FilterMatchStatus = "mismatch"
)

// FilterMatch is the verdict of a test filter for a single test.
type FilterMatch struct {
	Status FilterMatchStatus `json:"status"`
	// Only set when Status is mismatch
	Reason MismatchReason `json:"reason,omitempty"`
}

// Matches returns the verdict for a test that passed the filter.
func Matches() FilterMatch {
	return FilterMatch{Status: FilterMatchStatusMatches}
}

// Mismatch returns the verdict for a test rejected by the filter.
func Mismatch(reason MismatchReason) FilterMatch {
	return FilterMatch{Status: FilterMatchStatusMismatch, Reason: reason}
}

// IsMatch returns true if the test should be run.
func (f FilterMatch) IsMatch() bool {
	return f.Status == FilterMatchStatusMatches
}

// RustTestBinarySummary describes a single built test binary.
type RustTestBinarySummary struct {
	// Unique identifier for the binary, derived from the package and target
	BinaryID string `json:"binary-id"`
	// Target name as defined in the package manifest
	BinaryName string `json:"binary-name"`
	// Opaque package identifier from the build tool
	PackageID string `json:"package-id"`
	// Path to the binary on disk
	BinaryPath string `json:"binary-path"`
	// Platform the binary was built for
	BuildPlatform BuildPlatform `json:"build-platform"`
}

// BinaryListSummary is the serializable form of a binary list, keyed by
// binary ID.
type BinaryListSummary struct {
	RustBinaries map[string]RustTestBinarySummary `json:"rust-binaries"`
}

// RustTestCaseSummary describes a single test case within a suite.
type RustTestCaseSummary struct {
	Ignored     bool        `json:"ignored"`
	FilterMatch FilterMatch `json:"filter-match"`
}

// RustTestSuiteSummary describes all tests of one binary.
type RustTestSuiteSummary struct {
	PackageName string `json:"package-name"`
	RustTestBinarySummary
	// Working directory the binary is executed in
	Cwd       string                         `json:"cwd"`
	Testcases map[string]RustTestCaseSummary `json:"testcases"`
}

// TestListSummary is the serializable form of a test list, keyed by
// binary ID.
type TestListSummary struct {
	TestCount  int                             `json:"test-count"`
	RustSuites map[string]RustTestSuiteSummary `json:"rust-suites"`
}

// Binaries extracts the binary list embedded in a test list summary.
func (s TestListSummary) Binaries() BinaryListSummary {
	binaries := make(map[string]RustTestBinarySummary, len(s.RustSuites))
	for id, suite := range s.RustSuites {
		binaries[id] = suite.RustTestBinarySummary
	}
	return BinaryListSummary{RustBinaries: binaries}
}
