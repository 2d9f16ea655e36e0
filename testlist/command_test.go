package testlist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perfgo/nextest/filter"
	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/runner"
)

func instances(t *testing.T, list *TestList) map[string]TestInstance {
	t.Helper()
	out := make(map[string]TestInstance)
	for instance := range list.Tests() {
		out[instance.Name()] = instance
	}
	return out
}

func TestCommand(t *testing.T) {
	artifact := fakeArtifact()
	artifact.Package.Version = "1.2.3-beta.1"
	artifact.Package.Authors = []string{"A <a@example.com>", "B <b@example.com>"}
	artifact.Package.License = "MIT"

	list, err := NewWithOutputs([]ArtifactOutput{
		{Artifact: artifact, NonIgnored: "tests::run: test\n", Ignored: "tests::slow: test\n"},
	}, filter.Any(filter.RunIgnoredAll))
	require.NoError(t, err)
	byName := instances(t, list)

	cmd := byName["tests::run"].Command(nil)
	require.Equal(t, "/fake/binary", cmd.Program)
	require.Equal(t, []string{"--exact", "tests::run", "--nocapture"}, cmd.Args)
	require.Equal(t, "/fake/cwd", cmd.Dir)
	require.Equal(t, map[string]string{
		"NEXTEST":                 "1",
		"CARGO_MANIFEST_DIR":      "/Users/fakeuser/local/testcrates/metadata/metadata-helper",
		"CARGO_PKG_VERSION":       "1.2.3-beta.1",
		"CARGO_PKG_VERSION_MAJOR": "1",
		"CARGO_PKG_VERSION_MINOR": "2",
		"CARGO_PKG_VERSION_PATCH": "3",
		"CARGO_PKG_VERSION_PRE":   "beta.1",
		"CARGO_PKG_AUTHORS":       "A <a@example.com>:B <b@example.com>",
		"CARGO_PKG_NAME":          "metadata-helper",
		"CARGO_PKG_DESCRIPTION":   "",
		"CARGO_PKG_HOMEPAGE":      "",
		"CARGO_PKG_LICENSE":       "MIT",
		"CARGO_PKG_LICENSE_FILE":  "",
		"CARGO_PKG_REPOSITORY":    "",
	}, cmd.Env)

	ignored := byName["tests::slow"].Command(nil)
	require.Equal(t, []string{"--exact", "tests::slow", "--nocapture", "--ignored"}, ignored.Args)
}

func TestCommandWithRunner(t *testing.T) {
	host := fakeArtifact()
	host.BinaryPath = "/fake/macro"
	host.BinaryID = "fake-package::proc-macro/macro"
	host.BuildPlatform = model.BuildPlatformHost

	list, err := NewWithOutputs([]ArtifactOutput{
		{Artifact: fakeArtifact(), NonIgnored: "target_test: test\n"},
		{Artifact: host, NonIgnored: "host_test: test\n"},
	}, filter.Any(filter.RunIgnoredDefault))
	require.NoError(t, err)
	byName := instances(t, list)

	r, err := runner.New("", "qemu-aarch64 -L '/usr/aarch64 gnu'")
	require.NoError(t, err)

	cmd := byName["target_test"].Command(r)
	require.Equal(t, "qemu-aarch64", cmd.Program)
	require.Equal(t, []string{"-L", "/usr/aarch64 gnu", "/fake/binary", "--exact", "target_test", "--nocapture"}, cmd.Args)
	require.Equal(t, "qemu-aarch64 -L '/usr/aarch64 gnu' /fake/binary --exact target_test --nocapture", cmd.String())

	// Host binaries run natively when there is no host runner.
	hostCmd := byName["host_test"].Command(r)
	require.Equal(t, "/fake/macro", hostCmd.Program)
	require.Equal(t, []string{"--exact", "host_test", "--nocapture"}, hostCmd.Args)
}

func TestCommandUnparseableVersion(t *testing.T) {
	artifact := fakeArtifact()
	artifact.Package.Version = "not-a-version"

	list, err := NewWithOutputs([]ArtifactOutput{
		{Artifact: artifact, NonIgnored: "a: test\n"},
	}, filter.Any(filter.RunIgnoredDefault))
	require.NoError(t, err)

	cmd := instances(t, list)["a"].Command(nil)
	require.Equal(t, "not-a-version", cmd.Env["CARGO_PKG_VERSION"])
	require.Equal(t, "", cmd.Env["CARGO_PKG_VERSION_MAJOR"])
	require.Equal(t, "", cmd.Env["CARGO_PKG_VERSION_PRE"])
}

func TestCommandEnviron(t *testing.T) {
	cmd := &Command{
		Program: "/bin/true",
		Env:     map[string]string{"B": "2", "A": "1"},
		Dir:     "/tmp",
	}
	require.Equal(t, []string{"A=1", "B=2"}, cmd.Environ())

	execCmd := cmd.Cmd(t.Context())
	require.Equal(t, "/tmp", execCmd.Dir)
	require.Equal(t, []string{"A=1", "B=2"}, execCmd.Env[len(execCmd.Env)-2:])
}
