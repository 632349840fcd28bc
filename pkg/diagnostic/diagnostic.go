package diagnostic

import (
	"github.com/walteh/goslim/pkg/position"
)

// Source is reported on every diagnostic.
const Source = "slim"

// Severity represents the severity level of a diagnostic
type Severity string

const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityInformation Severity = "info"
	SeverityHint        Severity = "hint"
)

// Code returns the editor protocol number for the severity.
func (s Severity) Code() int {
	switch s {
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	case SeverityInformation:
		return 3
	default:
		return 4
	}
}

// Rule codes, in evaluation order.
const (
	RuleInvalidTagSyntax        = "invalid-tag-syntax"
	RuleUnclosedBrackets        = "unclosed-brackets"
	RuleInvalidAttributeSyntax  = "invalid-attribute-syntax"
	RuleInconsistentIndentation = "inconsistent-indentation"
	RuleDuplicateID             = "duplicate-id"
	RuleEmptyTag                = "empty-tag"
	RuleInvalidLogicSyntax      = "invalid-logic-syntax"
)

// Diagnostic represents a single finding. Range is 0-based.
type Diagnostic struct {
	Code     string
	Message  string
	Severity Severity
	Range    position.Range
	Source   string
}

// Options mirrors the lint settings a host exposes. Zero values disable
// everything, so start from DefaultOptions.
type Options struct {
	Enabled             bool
	ValidateSyntax      bool
	ValidateIndentation bool
	ValidateLogic       bool
	ValidateIDs         bool
	WarnEmptyTags       bool
	// DisabledRules turns off individual rule codes on top of the groups.
	DisabledRules []string

	IndentSize int
	UseTabs    bool
}

func DefaultOptions() Options {
	return Options{
		Enabled:             true,
		ValidateSyntax:      true,
		ValidateIndentation: true,
		ValidateLogic:       true,
		ValidateIDs:         true,
		WarnEmptyTags:       false,
		IndentSize:          2,
	}
}

// Applies reports whether the rule with the given code should run.
func (o Options) Applies(code string) bool {
	if !o.Enabled {
		return false
	}
	for _, d := range o.DisabledRules {
		if d == code {
			return false
		}
	}
	switch code {
	case RuleInvalidTagSyntax, RuleUnclosedBrackets, RuleInvalidAttributeSyntax:
		return o.ValidateSyntax
	case RuleInconsistentIndentation:
		return o.ValidateIndentation
	case RuleInvalidLogicSyntax:
		return o.ValidateLogic
	case RuleDuplicateID:
		return o.ValidateIDs
	case RuleEmptyTag:
		return o.WarnEmptyTags
	default:
		return true
	}
}
