package testlist

import "fmt"

// ProcessInvocationError is returned when a binary's self-listing process
// fails to start or exits unsuccessfully.
type ProcessInvocationError struct {
	// Shell-escaped command line that was attempted
	Command string
	// Trimmed stderr of the process, if any
	Stderr string
	Err    error
}

func (e *ProcessInvocationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("running '%s' failed: %v (stderr: %s)", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("running '%s' failed: %v", e.Command, e.Err)
}

func (e *ProcessInvocationError) Unwrap() error { return e.Err }

// ListFormatError is returned when a line of self-listing output doesn't
// follow the "<name>: test" format.
type ListFormatError struct {
	Line   string
	Output string
}

func (e *ListFormatError) Error() string {
	return fmt.Sprintf("line '%s' did not end with the string '%s' or '%s', full output:\n%s", e.Line, testSuffix, benchmarkSuffix, e.Output)
}
