package tui

import (
	"bytes"
	"testing"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/keyfile"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/migrate"
	"github.com/stretchr/testify/assert"
)

func TestDocumentMarkdown(t *testing.T) {
	doc := keyfile.Parse("; Fires everything\nalias Volley <& FireAll $$ FireTorps &>\nF1 \"Volley $$ STOTrayExecByTray 0 0\"\nnot a line\n")
	md := DocumentMarkdown("tactical.txt", doc)

	assert.Contains(t, md, "# tactical.txt")
	assert.Contains(t, md, "1 keybinds, 1 aliases")
	assert.Contains(t, md, "| `F1` | `Volley` `STOTrayExecByTray 0 0` |")
	assert.Contains(t, md, "| `Volley` | `FireAll` `FireTorps` | Fires everything |")
	assert.Contains(t, md, "## Errors")
	assert.Contains(t, md, "line 4:")
}

func TestDocumentMarkdown_EscapesPipes(t *testing.T) {
	doc := domain.NewParsedDocument()
	doc.Keybinds["F1"] = domain.KeybindLine{Key: "F1", Chain: []string{"say a|b"}}
	assert.Contains(t, DocumentMarkdown("x", doc), "`say a\\|b`")
}

func TestMigrationMarkdown(t *testing.T) {
	md := MigrationMarkdown(map[string]migrate.Report{
		"b": {FromVersion: "2.2.0", ToVersion: "2.2.0"},
		"a": {FromVersion: "1.0.0", ToVersion: "2.2.0", Applied: []domain.MigrationID{migrate.KeysToBuilds}},
	})
	assert.Contains(t, md, "| a | 1.0.0 | 2.2.0 | keys-to-builds |")
	assert.Contains(t, md, "| b | 2.2.0 | 2.2.0 | none |")
	assert.Less(t, bytes.Index([]byte(md), []byte("| a |")), bytes.Index([]byte(md), []byte("| b |")))
}

func TestRenderer(t *testing.T) {
	out, err := NewRenderer()("# Title")
	assert.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "keybind manager v1.2.3")
}
