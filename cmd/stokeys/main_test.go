package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleKeybinds = `; combat
F1 "FireAll $$ +STOTrayExecByTray 0 0"
alias attack <& FireAll $$ attack2 &>
alias attack2 <& FirePhasers &>
this line is not valid
`

func TestParseCommand_JSON(t *testing.T) {
	path := writeFile(t, "keys.txt", sampleKeybinds)

	out, err := execute(t, "parse", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"F1"`)
	assert.Contains(t, out, `"attack"`)
	assert.Contains(t, out, "this line is not valid")
}

func TestParseCommand_Strict(t *testing.T) {
	path := writeFile(t, "keys.txt", sampleKeybinds)

	_, err := execute(t, "parse", path, "--format", "yaml", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 unrecognized line(s)")
}

func TestParseCommand_Graph(t *testing.T) {
	path := writeFile(t, "keys.txt", sampleKeybinds)

	out, err := execute(t, "parse", path, "--graph")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
}

func TestParseCommand_UnknownFormat(t *testing.T) {
	path := writeFile(t, "keys.txt", sampleKeybinds)

	_, err := execute(t, "parse", path, "--format", "xml")
	require.Error(t, err)
}

func TestImportThenGenerate(t *testing.T) {
	keys := writeFile(t, "keys.txt", sampleKeybinds)
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")

	_, err := execute(t, "import", keys, "--name", "Tactical", "--out", profilePath)
	require.NoError(t, err)

	raw, err := file.ReadProfile(profilePath)
	require.NoError(t, err)
	assert.Equal(t, "Tactical", raw["name"])
	assert.Equal(t, "2.2.0", raw["migrationVersion"])

	out, err := execute(t, "generate", profilePath)
	require.NoError(t, err)
	assert.Contains(t, out, `F1 "FireAll $$ +STOTrayExecByTray 0 0"`)
	assert.Contains(t, out, "; Profile: Tactical")

	out, err = execute(t, "generate", profilePath, "--aliases")
	require.NoError(t, err)
	assert.Contains(t, out, "alias attack <& FireAll $$ attack2 &>")
}

func TestGenerateCommand_StoreDir(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"name":"Legacy","mode":"ground","keys":{"F2":[{"command":"Target_Enemy_Near"}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.json"), []byte(legacy), 0644))
	outPath := filepath.Join(t.TempDir(), "legacy_ground.txt")

	_, err := execute(t, "generate", "legacy", "--store-dir", dir, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `F2 "Target_Enemy_Near"`)
	assert.Contains(t, string(data), "; Environment: ground")

	stored, err := os.ReadFile(filepath.Join(dir, "legacy.json"))
	require.NoError(t, err)
	assert.Equal(t, legacy, string(stored), "reading through the store must not rewrite it")
}

func TestGenerateCommand_WatchRejectsStore(t *testing.T) {
	_, err := execute(t, "generate", "legacy", "--store-dir", t.TempDir(), "--watch")
	require.Error(t, err)
}

func TestImportCommand_MergesFiles(t *testing.T) {
	first := writeFile(t, "space.txt", `F1 "a"`+"\n")
	second := writeFile(t, "aliases.txt", `F2 "b"`+"\nalias go <& c &>\n")

	out, err := execute(t, "import", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, `"F1"`)
	assert.Contains(t, out, `"F2"`)
	assert.Contains(t, out, `"go"`)
	assert.Contains(t, out, `"name": "space"`)
}

func TestMigrateCommand_Files(t *testing.T) {
	path := writeFile(t, "legacy.json", `{"name":"Old","keys":{"F1":["FireAll"]}}`)

	out, err := execute(t, "migrate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "| 1.0.0 | 2.2.0 |")

	raw, err := file.ReadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "2.2.0", raw["migrationVersion"])
	assert.NotContains(t, raw, "keys")
}

func TestMigrateCommand_DryRun(t *testing.T) {
	const legacy = `{"name":"Old","keys":{"F1":["FireAll"]}}`
	path := writeFile(t, "legacy.json", legacy)

	_, err := execute(t, "migrate", path, "--dry-run")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, legacy, string(data))
}

func TestMigrateCommand_StoreDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"name":"A","keys":{"F1":["x"]}}`), 0644))

	out, err := execute(t, "migrate", "--store-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "| a |")

	raw, err := file.ReadProfile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, "2.2.0", raw["migrationVersion"])
}

func TestMigrateCommand_NothingToDo(t *testing.T) {
	_, err := execute(t, "migrate")
	require.Error(t, err)
}

func TestPermuteCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "single with default active",
			args: []string{"permute", "single", "--tray", "1", "--slot", "2"},
			want: "+STOTrayExecByTray 1 2\n",
		},
		{
			name: "range with explicit active",
			args: []string{"permute", "range", "--start-tray", "0", "--end-tray", "0", "--end-slot", "1", "--active", "0"},
			want: "STOTrayExecByTray 0 0 0 $$ STOTrayExecByTray 0 0 1\n",
		},
		{
			name: "single with backup as keybind line",
			args: []string{"permute", "single_with_backup", "--tray", "0", "--slot", "1", "--backup-tray", "2", "--backup-slot", "3", "--key", "F3"},
			want: "F3 \"+TrayExecByTrayWithBackup 0 1 2 3\"\n",
		},
		{
			name: "mirrored tray variant",
			args: []string{"permute", "range", "--end-slot", "2", "--command", "TrayExecByTray", "--mirror"},
			want: "+TrayExecByTray 0 0 $$ +TrayExecByTray 0 1 $$ +TrayExecByTray 0 2 $$ +TrayExecByTray 0 1 $$ +TrayExecByTray 0 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPermuteCommand_UnknownKind(t *testing.T) {
	_, err := execute(t, "permute", "diagonal")
	require.Error(t, err)
}

func TestChainCommands(t *testing.T) {
	out, err := execute(t, "chain", "mirror", "a $$ b $$ c")
	require.NoError(t, err)
	assert.Equal(t, "a $$ b $$ c $$ b $$ a\n", out)

	out, err = execute(t, "chain", "unmirror", "a $$ b $$ c $$ b $$ a")
	require.NoError(t, err)
	assert.Equal(t, "a $$ b $$ c\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stokeys version ")
}

func TestMetricsFile(t *testing.T) {
	keys := writeFile(t, "keys.txt", sampleKeybinds)
	metricsPath := filepath.Join(t.TempDir(), "stokeys.prom")

	_, err := execute(t, "parse", keys, "--format", "json", "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "parse_errors_total")
}
