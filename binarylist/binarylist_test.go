package binarylist

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfgo/nextest/metadata"
	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/output"
)

const (
	pkgID   = "pkg 0.1.0 (path+file:///ws/pkg)"
	macroID = "pkg-macro 0.1.0 (path+file:///ws/pkg-macro)"
)

func testGraph() *metadata.Graph {
	return metadata.NewGraph("/ws",
		metadata.PackageMetadata{ID: pkgID, Name: "pkg", Version: "0.1.0", ManifestPath: "/ws/pkg/Cargo.toml"},
		metadata.PackageMetadata{ID: macroID, Name: "pkg-macro", Version: "0.1.0", ManifestPath: "/ws/pkg-macro/Cargo.toml"},
	)
}

func TestBinaryID(t *testing.T) {
	tests := []struct {
		name   string
		target MessageTarget
		want   string
	}{
		{name: "lib", target: MessageTarget{Name: "helper", Kind: []string{"lib"}}, want: "pkg"},
		{name: "lib among other kinds", target: MessageTarget{Name: "helper", Kind: []string{"rlib", "lib"}}, want: "pkg"},
		{name: "integration test", target: MessageTarget{Name: "it_works", Kind: []string{"test"}}, want: "pkg::it_works"},
		{name: "bench", target: MessageTarget{Name: "bench1", Kind: []string{"bench"}}, want: "pkg::bench/bench1"},
		{name: "bin", target: MessageTarget{Name: "tool", Kind: []string{"bin"}}, want: "pkg::bin/tool"},
		{name: "proc-macro", target: MessageTarget{Name: "derive", Kind: []string{"proc-macro"}}, want: "pkg::proc-macro/derive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := binaryID("pkg", tt.target)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := binaryID("pkg", MessageTarget{Name: "mystery"})
	var kindErr *MissingTargetKindError
	require.ErrorAs(t, err, &kindErr)
	require.Equal(t, "pkg", kindErr.PackageName)
	require.Equal(t, "mystery", kindErr.BinaryName)
}

func TestBuildPlatform(t *testing.T) {
	assert.Equal(t, model.BuildPlatformHost, buildPlatform([]string{"proc-macro"}))
	assert.Equal(t, model.BuildPlatformTarget, buildPlatform([]string{"proc-macro", "lib"}))
	assert.Equal(t, model.BuildPlatformTarget, buildPlatform([]string{"test"}))
	assert.Equal(t, model.BuildPlatformTarget, buildPlatform(nil))
}

const messages = `   Compiling pkg v0.1.0 (/ws/pkg)
{"reason":"compiler-artifact","package_id":"pkg 0.1.0 (path+file:///ws/pkg)","target":{"name":"pkg","kind":["lib"]},"profile":{"test":false},"executable":null}
{"reason":"compiler-artifact","package_id":"pkg 0.1.0 (path+file:///ws/pkg)","target":{"name":"pkg","kind":["lib"]},"profile":{"test":true},"executable":"/ws/target/debug/deps/pkg-aaaa"}
{"reason":"compiler-artifact","package_id":"pkg 0.1.0 (path+file:///ws/pkg)","target":{"name":"it_works","kind":["test"]},"profile":{"test":true},"executable":"/ws/target/debug/deps/it_works-bbbb"}
{"reason":"compiler-message","package_id":"pkg 0.1.0 (path+file:///ws/pkg)","message":{"rendered":"warning: unused"}}
{"reason":"compiler-artifact","package_id":"pkg-macro 0.1.0 (path+file:///ws/pkg-macro)","target":{"name":"pkg-macro","kind":["proc-macro"]},"profile":{"test":true},"executable":"/ws/target/debug/deps/pkg_macro-cccc"}
{"reason":"compiler-artifact","package_id":"pkg 0.1.0 (path+file:///ws/pkg)","target":{"name":"bench1","kind":["bench"]},"profile":{"test":true},"executable":"/ws/target/debug/deps/bench1-dddd"}
{"reason":"build-finished","success":true}
`

func TestFromMessages(t *testing.T) {
	list, err := FromMessages(strings.NewReader(messages), testGraph())
	require.NoError(t, err)

	require.Equal(t, []BuiltBinary{
		{ID: "pkg", Path: "/ws/target/debug/deps/pkg-aaaa", PackageID: pkgID, Name: "pkg", BuildPlatform: model.BuildPlatformTarget},
		{ID: "pkg-macro::proc-macro/pkg-macro", Path: "/ws/target/debug/deps/pkg_macro-cccc", PackageID: macroID, Name: "pkg-macro", BuildPlatform: model.BuildPlatformHost},
		{ID: "pkg::bench/bench1", Path: "/ws/target/debug/deps/bench1-dddd", PackageID: pkgID, Name: "bench1", BuildPlatform: model.BuildPlatformTarget},
		{ID: "pkg::it_works", Path: "/ws/target/debug/deps/it_works-bbbb", PackageID: pkgID, Name: "it_works", BuildPlatform: model.BuildPlatformTarget},
	}, list.Binaries)
}

func TestFromMessagesErrors(t *testing.T) {
	t.Run("unknown package", func(t *testing.T) {
		in := `{"reason":"compiler-artifact","package_id":"ghost 1.0.0","target":{"name":"ghost","kind":["lib"]},"profile":{"test":true},"executable":"/bin/ghost"}`
		_, err := FromMessages(strings.NewReader(in), testGraph())
		var pkgErr *UnknownPackageError
		require.ErrorAs(t, err, &pkgErr)
		require.Equal(t, "ghost 1.0.0", pkgErr.PackageID)
	})

	t.Run("missing target kind", func(t *testing.T) {
		in := `{"reason":"compiler-artifact","package_id":"pkg 0.1.0 (path+file:///ws/pkg)","target":{"name":"odd","kind":[]},"profile":{"test":true},"executable":"/bin/odd"}`
		_, err := FromMessages(strings.NewReader(in), testGraph())
		var kindErr *MissingTargetKindError
		require.ErrorAs(t, err, &kindErr)
	})

	t.Run("malformed message", func(t *testing.T) {
		in := "{\"reason\":\"compiler-artifact\"}\n{\"reason\": oops}\n"
		_, err := FromMessages(strings.NewReader(in), testGraph())
		var parseErr *BuildEventParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, 2, parseErr.Line)
	})

	t.Run("read failure", func(t *testing.T) {
		_, err := FromMessages(failingReader{}, testGraph())
		var parseErr *BuildEventParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func fakeList() *BinaryList {
	return &BinaryList{Binaries: []BuiltBinary{
		{
			ID:            "fake-package::bin/fake-binary",
			Path:          "/fake/binary",
			PackageID:     "fake-package 0.1.0 (path+file:///Users/fakeuser/project/fake-package)",
			Name:          "fake-binary",
			BuildPlatform: model.BuildPlatformTarget,
		},
		{
			ID:            "fake-macro::proc-macro/fake-macro",
			Path:          "/fake/macro",
			PackageID:     "fake-macro 0.1.0 (path+file:///Users/fakeuser/project/fake-macro)",
			Name:          "fake-macro",
			BuildPlatform: model.BuildPlatformHost,
		},
	}}
}

func TestWrite(t *testing.T) {
	list := fakeList()

	human, err := list.Render(output.Format{Kind: output.Human})
	require.NoError(t, err)
	require.Equal(t, `fake-package::bin/fake-binary
fake-macro::proc-macro/fake-macro
`, human)

	verbose, err := list.Render(output.Format{Kind: output.Human, Verbose: true})
	require.NoError(t, err)
	require.Equal(t, `fake-package::bin/fake-binary:
  bin: /fake/binary
  build platform: target
fake-macro::proc-macro/fake-macro:
  bin: /fake/macro
  build platform: host
`, verbose)

	pretty, err := list.Render(output.Format{Kind: output.JSONPretty})
	require.NoError(t, err)
	require.Equal(t, `{
  "rust-binaries": {
    "fake-macro::proc-macro/fake-macro": {
      "binary-id": "fake-macro::proc-macro/fake-macro",
      "binary-name": "fake-macro",
      "package-id": "fake-macro 0.1.0 (path+file:///Users/fakeuser/project/fake-macro)",
      "binary-path": "/fake/macro",
      "build-platform": "host"
    },
    "fake-package::bin/fake-binary": {
      "binary-id": "fake-package::bin/fake-binary",
      "binary-name": "fake-binary",
      "package-id": "fake-package 0.1.0 (path+file:///Users/fakeuser/project/fake-package)",
      "binary-path": "/fake/binary",
      "build-platform": "target"
    }
  }
}`, pretty)
}

func TestSummaryRoundTrip(t *testing.T) {
	list := fakeList()

	var buf bytes.Buffer
	require.NoError(t, list.Write(output.Format{Kind: output.JSON}, &buf, false))

	summary, err := model.DecodeBinaryListSummary(&buf)
	require.NoError(t, err)

	back := FromSummary(summary)
	require.Equal(t, list.Binaries, back.Binaries)
}

func TestFromSummaryRejectsUnknownPlatform(t *testing.T) {
	in := `{"rust-binaries": {"a": {"binary-id": "a", "build-platform": "moon"}}}`
	_, err := model.DecodeBinaryListSummary(strings.NewReader(in))
	var serErr *model.SerializationError
	require.ErrorAs(t, err, &serErr)
}
