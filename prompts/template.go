// Package prompts provides prompt templates for the pipeline's model calls.
package prompts

import (
	"regexp"
	"strings"

	"github.com/aqua777/go-ragbot/llm"
)

// templateVarRegex matches {variable} placeholders in templates.
var templateVarRegex = regexp.MustCompile(`\{(\w+)\}`)

// GetTemplateVars extracts variable names from a template string.
func GetTemplateVars(template string) []string {
	matches := templateVarRegex.FindAllStringSubmatch(template, -1)
	vars := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, match := range matches {
		if len(match) > 1 && !seen[match[1]] {
			vars = append(vars, match[1])
			seen[match[1]] = true
		}
	}
	return vars
}

// FormatString formats a template string with the given variables.
func FormatString(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		placeholder := "{" + key + "}"
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// PromptTemplate is a simple string-based prompt template.
type PromptTemplate struct {
	// Template is the template string with {variable} placeholders.
	Template string
	// TemplateVars are the variable names extracted from the template.
	TemplateVars []string
}

// NewPromptTemplate creates a new PromptTemplate.
func NewPromptTemplate(template string) *PromptTemplate {
	return &PromptTemplate{
		Template:     template,
		TemplateVars: GetTemplateVars(template),
	}
}

// Format formats the prompt into a string.
func (pt *PromptTemplate) Format(vars map[string]string) string {
	return FormatString(pt.Template, vars)
}

// FormatMessages formats the prompt into chat messages.
func (pt *PromptTemplate) FormatMessages(vars map[string]string) []llm.ChatMessage {
	return []llm.ChatMessage{
		llm.NewSystemMessage(pt.Format(vars)),
	}
}
