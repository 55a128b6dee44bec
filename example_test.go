package keybind_test

import (
	"fmt"
	"strings"

	keybind "github.com/sto-tools/sto-tools-keybind-manager-sub008"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/keyfile"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/tray"
)

func ExampleEngine_Parse() {
	eng := keybind.New()
	doc := eng.Parse(`F1 "FireAll $$ +STOTrayExecByTray 0 0"
alias Volley <& FirePhasers $$ FireTorps &>`)

	fmt.Println(doc.Keybinds["F1"].Chain)
	fmt.Println(doc.Aliases["Volley"].Chain)
	// Output:
	// [FireAll +STOTrayExecByTray 0 0]
	// [FirePhasers FireTorps]
}

func ExampleEngine_Import() {
	eng := keybind.New()
	text := "Space \"a $$ b $$ a\"\nthis line is not valid\n"

	profile, doc := eng.Import(text, "space", keyfile.ImportOptions{Name: "Tactical", Unmirror: true})
	for _, lineErr := range doc.Errors {
		fmt.Println("skipped line", lineErr.LineNumber)
	}
	fmt.Println(profile.Keys("space", "")["Space"], profile.Stabilized("space", "", "Space"))
	// Output:
	// skipped line 2
	// [a b] true
}

func ExampleEngine_Normalize() {
	eng := keybind.New()
	tokens := eng.Normalize([]any{
		"Target_Enemy_Near $$ FireAll",
		map[string]any{"command": "STOTrayExecByTray 1 0 3", "icon": "torp.png"},
	})
	fmt.Println(strings.Join(tokens, " | "))
	// Output: Target_Enemy_Near | FireAll | +STOTrayExecByTray 0 3
}

func ExampleEngine_Permutations() {
	eng := keybind.New()
	tokens := eng.Permutations(tray.KindSingleWithBackup, tray.Params{
		Tray: 0, Slot: 1, BackupTray: 3, BackupSlot: 1, Active: tray.Active(0),
	})
	fmt.Println(tokens)
	// Output: [TrayExecByTrayWithBackup 0 0 1 3 1]
}

func ExampleEngine_Migrate() {
	eng := keybind.New()
	raw := map[string]any{"keys": map[string]any{"F1": "FireAll"}}

	report := eng.Migrate(raw)
	fmt.Println(report.FromVersion, "->", report.ToVersion)

	p, _ := domain.DecodeProfile(raw)
	fmt.Println(p.Keys("space", "")["F1"])
	// Output:
	// 1.0.0 -> 2.2.0
	// [FireAll]
}
