package testlist

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/perfgo/nextest/metadata"
	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/runner"
)

// TestInstance is a single test within a test list. It is only obtained
// through TestList.Tests.
type TestInstance struct {
	name       string
	binaryPath string
	list       *TestList
}

// Name returns the test name.
func (ti TestInstance) Name() string {
	return ti.name
}

// BinaryPath returns the path of the binary holding the test.
func (ti TestInstance) BinaryPath() string {
	return ti.binaryPath
}

// Suite returns the suite holding the test.
func (ti TestInstance) Suite() *TestSuite {
	return ti.list.suites[ti.binaryPath]
}

// Info returns what is known about the test.
func (ti TestInstance) Info() model.RustTestCaseSummary {
	return ti.Suite().Testcases[ti.name]
}

// Command builds the invocation plan of the test. r may be nil.
func (ti TestInstance) Command(r *runner.TargetRunner) *Command {
	suite := ti.Suite()

	args := []string{"--exact", ti.name, "--nocapture"}
	if ti.Info().Ignored {
		args = append(args, "--ignored")
	}
	program, argv := r.ForBuildPlatform(suite.BuildPlatform).BuildArgs(ti.binaryPath, args...)

	env := packageEnv(suite.Package)
	// Tests can check this to know they run under the harness.
	env["NEXTEST"] = "1"

	return &Command{
		Program: program,
		Args:    argv,
		Dir:     suite.Cwd,
		Env:     env,
	}
}

// packageEnv returns the variables the build tool sets when it runs a
// package's tests itself.
func packageEnv(pkg *metadata.PackageMetadata) map[string]string {
	var major, minor, patch, pre string
	if v, err := semver.NewVersion(pkg.Version); err == nil {
		major = strconv.FormatUint(v.Major(), 10)
		minor = strconv.FormatUint(v.Minor(), 10)
		patch = strconv.FormatUint(v.Patch(), 10)
		pre = v.Prerelease()
	}

	return map[string]string{
		"CARGO_MANIFEST_DIR":      pkg.ManifestDir(),
		"CARGO_PKG_VERSION":       pkg.Version,
		"CARGO_PKG_VERSION_MAJOR": major,
		"CARGO_PKG_VERSION_MINOR": minor,
		"CARGO_PKG_VERSION_PATCH": patch,
		"CARGO_PKG_VERSION_PRE":   pre,
		"CARGO_PKG_AUTHORS":       strings.Join(pkg.Authors, ":"),
		"CARGO_PKG_NAME":          pkg.Name,
		"CARGO_PKG_DESCRIPTION":   pkg.Description,
		"CARGO_PKG_HOMEPAGE":      pkg.Homepage,
		"CARGO_PKG_LICENSE":       pkg.License,
		"CARGO_PKG_LICENSE_FILE":  pkg.LicenseFile,
		"CARGO_PKG_REPOSITORY":    pkg.Repository,
	}
}
