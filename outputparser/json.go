// Package outputparser extracts structured data from raw model output.
//
// Model-backed adapters are expected to return a JSON object, but the raw
// text is untrusted: it may be wrapped in code fences or surrounded by prose.
// A parse failure is reported as *OutputParserError so callers can treat
// malformed model output as a distinct error class from backend faults.
package outputparser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// OutputParserError represents an error during output parsing.
type OutputParserError struct {
	Message string
	Output  string
}

func (e *OutputParserError) Error() string {
	return fmt.Sprintf("output parser error: %s (output: %s)", e.Message, e.Output)
}

// NewOutputParserError creates a new OutputParserError.
func NewOutputParserError(message, output string) *OutputParserError {
	return &OutputParserError{
		Message: message,
		Output:  output,
	}
}

// IsParseError reports whether err is an output parsing error.
func IsParseError(err error) bool {
	var perr *OutputParserError
	return errors.As(err, &perr)
}

// ParseJSON extracts a JSON object from raw model output and unmarshals it
// into target. It returns *OutputParserError if no JSON can be found or the
// JSON does not decode.
func ParseJSON(output string, target interface{}) error {
	jsonStr := ExtractJSON(output)
	if jsonStr == "" {
		return NewOutputParserError("no JSON found in output", output)
	}

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return NewOutputParserError(fmt.Sprintf("failed to parse JSON: %v", err), output)
	}

	return nil
}

// ExtractJSON extracts the JSON payload from text.
// It checks fenced code blocks first, then falls back to the outermost
// object or array literal.
func ExtractJSON(text string) string {
	// Look for JSON in code blocks
	codeBlockStart := strings.Index(text, "```json")
	if codeBlockStart != -1 {
		start := codeBlockStart + 7
		end := strings.Index(text[start:], "```")
		if end != -1 {
			return strings.TrimSpace(text[start : start+end])
		}
	}

	// Look for code blocks without language
	codeBlockStart = strings.Index(text, "```")
	if codeBlockStart != -1 {
		start := codeBlockStart + 3
		end := strings.Index(text[start:], "```")
		if end != -1 {
			return strings.TrimSpace(text[start : start+end])
		}
	}

	// Find JSON object
	start := strings.Index(text, "{")
	if start != -1 {
		end := strings.LastIndex(text, "}")
		if end > start {
			return text[start : end+1]
		}
	}

	// Find JSON array
	start = strings.Index(text, "[")
	if start != -1 {
		end := strings.LastIndex(text, "]")
		if end > start {
			return text[start : end+1]
		}
	}

	return ""
}
