package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmodl-helper/internal/adapters"
	"vmodl-helper/internal/app"
	"vmodl-helper/internal/types"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"verify", "generate", "inspect"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestReconcileCommandFlags(t *testing.T) {
	shared := []string{"wsdl", "vmodl", "catalog", "registry-module", "exclude", "namespace"}
	verify := newVerifyCommand()
	for _, name := range append(shared, "strict") {
		assert.NotNil(t, verify.Flags().Lookup(name), "verify missing flag: %s", name)
	}
	generate := newGenerateCommand()
	for _, name := range append(shared, "dry-run") {
		assert.NotNil(t, generate.Flags().Lookup(name), "generate missing flag: %s", name)
	}
	assert.Equal(t, "vmodl.db", verify.Flags().Lookup("vmodl").DefValue)
	assert.Equal(t, "vim", generate.Flags().Lookup("registry-module").DefValue)
}

func TestInspectCommandFlags(t *testing.T) {
	cmd := newInspectCommand()
	assert.NotNil(t, cmd.Flags().Lookup("vmodl"))
	assert.NotNil(t, cmd.Flags().Lookup("type"))
}

// ---------- Command execution tests ----------

func fixture(t *testing.T, parts ...string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(append([]string{root, "fixtures"}, parts...)...)
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(os.Stderr)
	return root.Execute()
}

func TestVerifyCommandStrict(t *testing.T) {
	args := []string{"verify", "--wsdl", fixture(t, "wsdl", "vimService.wsdl"), "--vmodl", fixture(t, "vmodl.db"), "--log-level", "error"}
	require.NoError(t, runRoot(t, args...))

	err := runRoot(t, append(args, "--strict")...)
	require.Error(t, err)
	assert.Equal(t, 6, exitCodeForError(err))
	assert.Contains(t, err.Error(), "registry drift: 3 findings")
}

func TestVerifyCommandUnresolvedExitCode(t *testing.T) {
	err := runRoot(t, "verify",
		"--wsdl", fixture(t, "pbm", "pbmService.wsdl"),
		"--vmodl", fixture(t, "pbm", "pbm.db"),
		"--registry-module", "pbm",
		"--log-level", "error",
	)
	require.Error(t, err)
	assert.Equal(t, 3, exitCodeForError(err))
}

func TestVerifyCommandBadNamespace(t *testing.T) {
	err := runRoot(t, "verify",
		"--wsdl", fixture(t, "wsdl", "vimService.wsdl"),
		"--vmodl", fixture(t, "vmodl.db"),
		"--namespace", "urn:nothing",
		"--log-level", "error",
	)
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeForError(err))
}

func TestGenerateCommand(t *testing.T) {
	data, err := os.ReadFile(fixture(t, "vmodl.db"))
	require.NoError(t, err)
	registryPath := filepath.Join(t.TempDir(), "vmodl.db")
	require.NoError(t, os.WriteFile(registryPath, data, 0o644))

	args := []string{"generate", "--wsdl", fixture(t, "wsdl", "vimService.wsdl"), "--vmodl", registryPath, "--log-level", "error"}
	require.NoError(t, runRoot(t, append(args, "--dry-run")...))
	unchanged, err := os.ReadFile(registryPath)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(unchanged))

	require.NoError(t, runRoot(t, args...))
	registry, err := adapters.NewRegistryFileAdapter().Load(registryPath)
	require.NoError(t, err)
	_, ok := registry.Lookup("ObjectContent")
	assert.True(t, ok)

	require.NoError(t, runRoot(t, "verify", "--wsdl", fixture(t, "wsdl", "vimService.wsdl"), "--vmodl", registryPath, "--strict", "--log-level", "error"))
}

func TestGenerateSummary(t *testing.T) {
	changed := app.GenerateResult{
		Added: []string{"ObjectContent"},
		Corrections: []types.Finding{{
			Kind:         types.FindingTypeMismatch,
			TypeName:     "VirtualMachineSummary",
			Property:     "uptimeSeconds",
			RegistryType: "xsd:string",
			SchemaType:   "xsd:int",
		}},
		RegistryPath: "vmodl.db",
		Changed:      true,
	}

	tests := []struct {
		name   string
		result app.GenerateResult
		want   string
	}{
		{
			name: "written with changes",
			result: func() app.GenerateResult {
				r := changed
				r.Written = true
				return r
			}(),
			want: "Adding ObjectContent to registry\n" +
				"Correcting VirtualMachineSummary.uptimeSeconds: xsd:string -> xsd:int\n" +
				"registry written: vmodl.db (1 added, 1 corrected)\n",
		},
		{
			name:   "dry run with changes",
			result: changed,
			want: "Adding ObjectContent to registry\n" +
				"Correcting VirtualMachineSummary.uptimeSeconds: xsd:string -> xsd:int\n" +
				"dry run: vmodl.db not written (1 added, 1 corrected)\n",
		},
		{
			name:   "written without changes",
			result: app.GenerateResult{RegistryPath: "vmodl.db", Written: true},
			want:   "registry written: vmodl.db (already up to date)\n",
		},
		{
			name:   "dry run without changes",
			result: app.GenerateResult{RegistryPath: "vmodl.db"},
			want:   "dry run: vmodl.db already up to date\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateSummary(tt.result))
		})
	}
}

func TestInspectCommand(t *testing.T) {
	require.NoError(t, runRoot(t, "inspect", "--vmodl", fixture(t, "vmodl.db"), "--log-level", "error"))
	require.NoError(t, runRoot(t, "inspect", "--vmodl", fixture(t, "vmodl.db"), "--type", "PropertySpec", "--log-level", "error"))

	err := runRoot(t, "inspect", "--vmodl", fixture(t, "vmodl.db"), "--type", "Nope", "--log-level", "error")
	require.Error(t, err)
	assert.Equal(t, 5, exitCodeForError(err))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		values   []string
		expected []string
	}{
		{
			name:     "nil cmd with values returns values",
			cmd:      nil,
			values:   []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			name:     "nil cmd empty returns nil",
			cmd:      nil,
			values:   nil,
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveStrings(tt.cmd, tt.values, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveBool(t *testing.T) {
	got := resolveBool(nil, true, "test_key", "test-flag")
	assert.True(t, got)

	got = resolveBool(nil, false, "test_key", "test-flag")
	assert.False(t, got)
}

func TestResolveNamespaces(t *testing.T) {
	got, err := resolveNamespaces(nil, []string{"urn:custom=custom"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"urn:custom": "custom"}, got)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringSlice("namespace", nil, "test flag")
	require.NoError(t, cmd.Flags().Set("namespace", "broken"))
	_, err = resolveNamespaces(cmd, []string{"broken"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 2,
		},
		{
			name: "already exists",
			err: errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg("dup"),
			expected: 2,
		},
		{
			name: "unresolved type",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(`unresolved type: "Nonsense"`),
			expected: 3,
		},
		{
			name: "broken inheritance",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("broken inheritance: Orphan extends Vanished, which is not in the schema"),
			expected: 4,
		},
		{
			name: "unknown namespace",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(`unknown namespace: "urn:elsewhere" for Stranger`),
			expected: 4,
		},
		{
			name: "registry drift",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("registry drift: 2 findings"),
			expected: 6,
		},
		{
			name: "not found generic",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("registry file not found: vmodl.db"),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
