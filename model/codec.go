package model

// codec.go contains JSON encoding and decoding of the summaries.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SerializationError is returned when a summary cannot be encoded or
// decoded.
type SerializationError struct {
	// What was being encoded or decoded (e.g. "binary list summary")
	What string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize %s: %v", e.What, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// EncodeJSON writes v as JSON. Pretty output is indented by two spaces.
// Neither form carries a trailing newline.
func EncodeJSON(w io.Writer, what string, v any, pretty bool) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return &SerializationError{What: what, Err: err}
	}
	if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		return &SerializationError{What: what, Err: err}
	}
	return nil
}

// DecodeBinaryListSummary reads a binary list summary.
func DecodeBinaryListSummary(r io.Reader) (BinaryListSummary, error) {
	var summary BinaryListSummary
	if err := json.NewDecoder(r).Decode(&summary); err != nil {
		return BinaryListSummary{}, &SerializationError{What: "binary list summary", Err: err}
	}
	return summary, nil
}

// DecodeTestListSummary reads a test list summary.
func DecodeTestListSummary(r io.Reader) (TestListSummary, error) {
	var summary TestListSummary
	if err := json.NewDecoder(r).Decode(&summary); err != nil {
		return TestListSummary{}, &SerializationError{What: "test list summary", Err: err}
	}
	return summary, nil
}

// LoadBinaryListSummary reads a binary list summary from a file.
func LoadBinaryListSummary(path string) (BinaryListSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return BinaryListSummary{}, fmt.Errorf("failed to open binary list summary: %w", err)
	}
	defer f.Close()

	return DecodeBinaryListSummary(f)
}
