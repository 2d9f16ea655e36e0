package testlist

// parse.go contains parsing of the self-listing output of a test binary.

import (
	"sort"
	"strings"
)

const (
	testSuffix      = ": test"
	benchmarkSuffix = ": benchmark"
)

// parseListOutput parses the output of --list --format terse and returns the
// sorted test names. The output is in the form:
//
//	<test name>: test
//	<bench name>: benchmark
//	...
func parseListOutput(listOutput string) ([]string, error) {
	var names []string
	for _, line := range strings.Split(listOutput, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		// Produced by the legacy benchmark harness, these aren't tests.
		if strings.HasSuffix(line, benchmarkSuffix) {
			continue
		}

		name, ok := strings.CutSuffix(line, testSuffix)
		if !ok {
			return nil, &ListFormatError{Line: line, Output: listOutput}
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}
