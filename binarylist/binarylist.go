// Package binarylist catalogs the test binaries produced by a build.
package binarylist

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/perfgo/nextest/metadata"
	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/output"
)

const (
	kindLib       = "lib"
	kindTest      = "test"
	kindProcMacro = "proc-macro"
)

// PackageLookup resolves package IDs to their metadata.
type PackageLookup interface {
	Metadata(id string) (*metadata.PackageMetadata, bool)
}

// BuiltBinary is a test binary built by the build tool. It hasn't been run
// yet, so nothing is known about the tests inside it.
type BuiltBinary struct {
	// Unique ID, see binaryID
	ID string
	// Path to the binary
	Path string
	// Package the binary belongs to
	PackageID string
	// Target name as defined in the package manifest
	Name string
	// Proc-macro tests are built for the host, everything else for the target
	BuildPlatform model.BuildPlatform
}

// BinaryList is the list of test binaries, sorted by ID.
type BinaryList struct {
	Binaries []BuiltBinary
}

// FromMessages reads the build tool's JSON messages from r and collects
// every test binary it reports.
func FromMessages(r io.Reader, graph PackageLookup) (*BinaryList, error) {
	var binaries []BuiltBinary

	err := readMessages(r, func(msg Message) error {
		if !msg.IsTestExecutable() {
			return nil
		}

		pkg, ok := graph.Metadata(msg.PackageID)
		if !ok {
			return &UnknownPackageError{PackageID: msg.PackageID}
		}

		id, err := binaryID(pkg.Name, msg.Target)
		if err != nil {
			return err
		}

		binaries = append(binaries, BuiltBinary{
			ID:            id,
			Path:          *msg.Executable,
			PackageID:     msg.PackageID,
			Name:          msg.Target.Name,
			BuildPlatform: buildPlatform(msg.Target.Kind),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(binaries, func(i, j int) bool {
		return binaries[i].ID < binaries[j].ID
	})

	return &BinaryList{Binaries: binaries}, nil
}

// binaryID derives a unique ID from the package name and build target:
//
//  1. A lib target uses the package name. A package has at most one lib.
//  2. An integration test uses "<package>::<name>". The build tool enforces
//     unique names for targets of the same kind within a package.
//  3. Any other target uses "<package>::<kind>/<name>", for the same reason.
func binaryID(packageName string, target MessageTarget) (string, error) {
	for _, kind := range target.Kind {
		if kind == kindLib {
			return packageName, nil
		}
	}

	if len(target.Kind) == 0 {
		return "", &MissingTargetKindError{PackageName: packageName, BinaryName: target.Name}
	}

	if kind := target.Kind[0]; kind != kindTest {
		return fmt.Sprintf("%s::%s/%s", packageName, kind, target.Name), nil
	}
	return packageName + "::" + target.Name, nil
}

// buildPlatform classifies proc-macro targets as host binaries. They are
// never cross-compiled.
func buildPlatform(kinds []string) model.BuildPlatform {
	if len(kinds) == 1 && kinds[0] == kindProcMacro {
		return model.BuildPlatformHost
	}
	return model.BuildPlatformTarget
}

// FromSummary reconstructs a list from its summary format. The summary is
// trusted as is.
func FromSummary(summary model.BinaryListSummary) *BinaryList {
	binaries := make([]BuiltBinary, 0, len(summary.RustBinaries))
	for _, bin := range summary.RustBinaries {
		binaries = append(binaries, BuiltBinary{
			ID:            bin.BinaryID,
			Path:          bin.BinaryPath,
			PackageID:     bin.PackageID,
			Name:          bin.BinaryName,
			BuildPlatform: bin.BuildPlatform,
		})
	}

	sort.Slice(binaries, func(i, j int) bool {
		return binaries[i].ID < binaries[j].ID
	})

	return &BinaryList{Binaries: binaries}
}

// Summary returns the serializable form of the list.
func (l *BinaryList) Summary() model.BinaryListSummary {
	binaries := make(map[string]model.RustTestBinarySummary, len(l.Binaries))
	for _, bin := range l.Binaries {
		binaries[bin.ID] = model.RustTestBinarySummary{
			BinaryID:      bin.ID,
			BinaryName:    bin.Name,
			PackageID:     bin.PackageID,
			BinaryPath:    bin.Path,
			BuildPlatform: bin.BuildPlatform,
		}
	}
	return model.BinaryListSummary{RustBinaries: binaries}
}

// Write outputs the list to w in the given format.
func (l *BinaryList) Write(format output.Format, w io.Writer, colorize bool) error {
	if format.IsSerializable() {
		return model.EncodeJSON(w, "binary list summary", l.Summary(), format.Kind == output.JSONPretty)
	}
	return l.writeHuman(w, format.Verbose, output.NewStyles(colorize))
}

func (l *BinaryList) writeHuman(w io.Writer, verbose bool, styles output.Styles) error {
	var b strings.Builder
	for _, bin := range l.Binaries {
		id := output.Paint(styles.BinaryID, bin.ID)
		if verbose {
			fmt.Fprintf(&b, "%s:\n", id)
			fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "bin:"), bin.Path)
			fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "build platform:"), bin.BuildPlatform)
		} else {
			fmt.Fprintf(&b, "%s\n", id)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Render returns the list in the given format without colors.
func (l *BinaryList) Render(format output.Format) (string, error) {
	var buf bytes.Buffer
	if err := l.Write(format, &buf, false); err != nil {
		return "", err
	}
	return buf.String(), nil
}
