package diff

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

// DiffExportedOnly pretty prints both values without unexported fields and
// returns an annotated line diff, or "" when they match.
func DiffExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	abc := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if abc == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll(abc, "\n-", "\n➖"), "\n+", "\n➕")

	return str
}

// Unified returns a line diff from before to after with a file header, or ""
// when the two texts are identical.
func Unified(name, before, after string) string {
	if before == after {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s (formatted)\n", name, name)
	for _, chunk := range diff.DiffChunks(strings.Split(before, "\n"), strings.Split(after, "\n")) {
		for _, line := range chunk.Deleted {
			b.WriteString("-" + line + "\n")
		}
		for _, line := range chunk.Added {
			b.WriteString("+" + line + "\n")
		}
		for _, line := range chunk.Equal {
			b.WriteString(" " + line + "\n")
		}
	}
	return b.String()
}
