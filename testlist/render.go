package testlist

// render.go contains the summary and human output of a test list.

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/output"
)

// Summary returns the serializable form of the list, keyed by binary id.
func (l *TestList) Summary() model.TestListSummary {
	suites := make(map[string]model.RustTestSuiteSummary, len(l.suites))
	for path, suite := range l.Suites() {
		suites[suite.BinaryID] = model.RustTestSuiteSummary{
			PackageName: suite.Package.Name,
			RustTestBinarySummary: model.RustTestBinarySummary{
				BinaryID:      suite.BinaryID,
				BinaryName:    suite.BinaryName,
				PackageID:     suite.Package.ID,
				BinaryPath:    path,
				BuildPlatform: suite.BuildPlatform,
			},
			Cwd:       suite.Cwd,
			Testcases: maps.Clone(suite.Testcases),
		}
	}
	return model.TestListSummary{
		TestCount:  l.testCount,
		RustSuites: suites,
	}
}

// Write outputs the list to w in the given format.
func (l *TestList) Write(format output.Format, w io.Writer, colorize bool) error {
	if format.IsSerializable() {
		return model.EncodeJSON(w, "test list summary", l.Summary(), format.Kind == output.JSONPretty)
	}
	return l.writeHuman(w, format.Verbose, output.NewStyles(colorize))
}

func (l *TestList) writeHuman(w io.Writer, verbose bool, styles output.Styles) error {
	var b strings.Builder
	for path, suite := range l.Suites() {
		fmt.Fprintf(&b, "%s:\n", output.Paint(styles.BinaryID, suite.BinaryID))
		if verbose {
			fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "bin:"), path)
			fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "cwd:"), suite.Cwd)
			fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "build platform:"), suite.BuildPlatform)
		}

		if len(suite.Testcases) == 0 {
			b.WriteString("    (no tests)\n")
			continue
		}
		for _, name := range suite.TestNames() {
			b.WriteString("    ")
			b.WriteString(styles.FormatTestName(name))
			if !suite.Testcases[name].FilterMatch.IsMatch() {
				b.WriteString(" (skipped)")
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Render returns the list in the given format without colors.
func (l *TestList) Render(format output.Format) (string, error) {
	var buf bytes.Buffer
	if err := l.Write(format, &buf, false); err != nil {
		return "", err
	}
	return buf.String(), nil
}
