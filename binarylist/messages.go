package binarylist

// messages.go contains decoding of the build tool's JSON message stream.

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
)

const (
	reasonCompilerArtifact = "compiler-artifact"
	maxMessageSize         = 16 * 1024 * 1024
)

// Message is a single build-completion event. Only the fields needed to
// catalog test binaries are decoded.
type Message struct {
	Reason    string        `json:"reason"`
	PackageID string        `json:"package_id"`
	Target    MessageTarget `json:"target"`
	Profile   struct {
		Test bool `json:"test"`
	} `json:"profile"`
	// Nil for artifacts without an executable (libraries, build scripts, ...)
	Executable *string `json:"executable"`
}

// MessageTarget is the build target an artifact was produced for.
type MessageTarget struct {
	Name string   `json:"name"`
	Kind []string `json:"kind"`
}

// IsTestExecutable returns true for test-profile artifacts with an
// executable.
func (m *Message) IsTestExecutable() bool {
	return m.Reason == reasonCompilerArtifact && m.Profile.Test && m.Executable != nil && *m.Executable != ""
}

// readMessages calls fn for every JSON message in r. Lines that aren't JSON
// objects are plain compiler output and skipped.
func readMessages(r io.Reader, fn func(Message) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxMessageSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}

		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			return &BuildEventParseError{Line: lineNo, Err: err}
		}
		if err := fn(msg); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return &BuildEventParseError{Line: lineNo + 1, Err: err}
	}
	return nil
}
