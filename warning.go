package richtext

import (
	"fmt"
	"strings"
)

// WarningCode identifies the kind of a non-fatal issue.
type WarningCode int

const (
	// WarningEmptyInput indicates the source produced no content.
	WarningEmptyInput WarningCode = iota
	// WarningNotRTF indicates RTF input that does not open with a group.
	WarningNotRTF
	// WarningMissingHeader indicates RTF input without an \rtf control word.
	WarningMissingHeader
	// WarningFormatGuessed indicates the format could not be detected and
	// was assumed.
	WarningFormatGuessed
)

func (c WarningCode) String() string {
	switch c {
	case WarningEmptyInput:
		return "empty-input"
	case WarningNotRTF:
		return "not-rtf"
	case WarningMissingHeader:
		return "missing-header"
	case WarningFormatGuessed:
		return "format-guessed"
	default:
		return "unknown"
	}
}

// Warning describes an issue where conversion succeeded but the result may
// not be what the caller expects.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
