package diagnostic

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"github.com/walteh/goslim/pkg/position"
)

// Formatter formats diagnostics into different output formats
type Formatter interface {
	Format(diagnostics []Diagnostic) ([]byte, error)
}

// VSCodeFormatter formats diagnostics into VSCode-compatible format
type VSCodeFormatter struct{}

func NewVSCodeFormatter() *VSCodeFormatter {
	return &VSCodeFormatter{}
}

type vscodePlace struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type vscodeRange struct {
	Start vscodePlace `json:"start"`
	End   vscodePlace `json:"end"`
}

type vscodeDiagnostic struct {
	Severity int         `json:"severity"`
	Message  string      `json:"message"`
	Range    vscodeRange `json:"range"`
	Code     string      `json:"code,omitempty"`
	Source   string      `json:"source"`
}

// Format implements Formatter. Positions are already 0-based.
func (f *VSCodeFormatter) Format(diagnostics []Diagnostic) ([]byte, error) {
	result := make([]vscodeDiagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		result = append(result, vscodeDiagnostic{
			Severity: d.Severity.Code(),
			Message:  d.Message,
			Range: vscodeRange{
				Start: vscodePlace{Line: d.Range.Start.Line, Character: d.Range.Start.Character},
				End:   vscodePlace{Line: d.Range.End.Line, Character: d.Range.End.Character},
			},
			Code:   d.Code,
			Source: d.Source,
		})
	}
	return json.Marshal(result)
}

// TextFormatter writes one "path:line:col: severity: message [code]" line per
// diagnostic. Lines and columns are 1-based; columns count user perceived
// characters when Lines is set.
type TextFormatter struct {
	Path  string
	Lines []string
	Color bool
}

func (f *TextFormatter) Format(diagnostics []Diagnostic) ([]byte, error) {
	var buf bytes.Buffer

	for _, d := range diagnostics {
		line := d.Range.Start.Line
		col := d.Range.Start.Character
		if line >= 0 && line < len(f.Lines) {
			col = position.GraphemeColumn(f.Lines[line], col)
		}

		loc := fmt.Sprintf("%s:%d:%d:", f.Path, line+1, col+1)
		sev := string(d.Severity) + ":"
		code := ""
		if d.Code != "" {
			code = " [" + d.Code + "]"
		}

		if f.Color {
			loc = color.New(color.Bold).Sprint(loc)
			sev = severityColor(d.Severity).Sprint(sev)
			code = color.New(color.Faint).Sprint(code)
		}

		fmt.Fprintf(&buf, "%s %s %s%s\n", loc, sev, d.Message, code)
	}

	return buf.Bytes(), nil
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityError:
		return color.New(color.FgHiRed, color.Bold)
	case SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
