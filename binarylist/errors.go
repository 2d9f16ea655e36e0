package binarylist

import "fmt"

// BuildEventParseError is returned for a malformed build message stream.
type BuildEventParseError struct {
	Line int
	Err  error
}

func (e *BuildEventParseError) Error() string {
	return fmt.Sprintf("failed to read build messages (line %d): %v", e.Line, e.Err)
}

func (e *BuildEventParseError) Unwrap() error { return e.Err }

// UnknownPackageError is returned when an artifact references a package
// missing from the package metadata.
type UnknownPackageError struct {
	PackageID string
}

func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("unknown package ID %q in package metadata", e.PackageID)
}

// MissingTargetKindError is returned for an artifact without a target kind,
// which makes its binary ID ambiguous.
type MissingTargetKindError struct {
	PackageName string
	BinaryName  string
}

func (e *MissingTargetKindError) Error() string {
	return fmt.Sprintf("missing target kind for binary %q in package %q", e.BinaryName, e.PackageName)
}
