package runner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perfgo/nextest/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantBin  string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "program only",
			in:       "wine",
			wantBin:  "wine",
			wantArgs: []string{},
		},
		{
			name:     "program with args",
			in:       "qemu-aarch64 -L /usr/aarch64-linux-gnu",
			wantBin:  "qemu-aarch64",
			wantArgs: []string{"-L", "/usr/aarch64-linux-gnu"},
		},
		{
			name:     "quoted args",
			in:       `ssh "my host" 'run tests'`,
			wantBin:  "ssh",
			wantArgs: []string{"my host", "run tests"},
		},
		{
			name:    "empty",
			in:      "   ",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			in:      `qemu "oops`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantBin, r.Binary())
			require.ElementsMatch(t, tt.wantArgs, r.Args())
		})
	}
}

func TestBuildArgs(t *testing.T) {
	r, err := Parse("qemu-aarch64 -L /sysroot")
	require.NoError(t, err)

	program, argv := r.BuildArgs("/bins/test-a", "--list", "--format", "terse")
	require.Equal(t, "qemu-aarch64", program)
	require.Equal(t, []string{"-L", "/sysroot", "/bins/test-a", "--list", "--format", "terse"}, argv)

	var native *PlatformRunner
	program, argv = native.BuildArgs("/bins/test-a", "--exact", "a::b")
	require.Equal(t, "/bins/test-a", program)
	require.Equal(t, []string{"--exact", "a::b"}, argv)
}

func TestBuildCommand(t *testing.T) {
	r, err := Parse("qemu-aarch64")
	require.NoError(t, err)

	require.Equal(t, "qemu-aarch64 '/my bins/test' --exact 'it works'", r.BuildCommand("/my bins/test", "--exact", "it works"))
}

func TestForBuildPlatform(t *testing.T) {
	tr, err := New("", "qemu-aarch64")
	require.NoError(t, err)

	require.Nil(t, tr.ForBuildPlatform(model.BuildPlatformHost))
	require.Equal(t, "qemu-aarch64", tr.ForBuildPlatform(model.BuildPlatformTarget).Binary())

	var none *TargetRunner
	require.Nil(t, none.ForBuildPlatform(model.BuildPlatformTarget))
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		EnvTargetRunner: "wine64",
	}
	tr, err := FromEnv(func(k string) string { return env[k] }, "host-wrapper", "qemu")
	require.NoError(t, err)

	require.Equal(t, "host-wrapper", tr.ForBuildPlatform(model.BuildPlatformHost).Binary())
	require.Equal(t, "wine64", tr.ForBuildPlatform(model.BuildPlatformTarget).Binary())
}
