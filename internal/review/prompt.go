package review

import (
	"strings"
)

const instructions = `You are an expert code reviewer. Analyze the provided code for bugs, performance issues, security risks, and maintainability.
Return strictly a JSON object matching this schema: {
  "issues": [{
    "title": string,
    "description": string,
    "severity": "low" | "medium" | "high" | "critical",
    "type"?: "bug" | "performance" | "security" | "style" | "maintainability",
    "lineStart"?: number,
    "lineEnd"?: number,
    "suggestion"?: string
  }],
  "fixedCode": string
}
If line numbers are unknown, omit them. Do not guess. Line numbers are 1-based and refer to the code below.
Provide a safe, minimal-diff fixed version of the code in fixedCode.
`

// BuildPrompt constructs the single instruction message sent to the model.
// An empty language is reported as "auto" and the code fence is left
// unlabeled.
func BuildPrompt(code, language string) string {
	language = strings.TrimSpace(language)
	hint := language
	if hint == "" {
		hint = "auto"
	}

	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\nLanguage: ")
	b.WriteString(hint)
	b.WriteString("\nCode:\n```")
	b.WriteString(language)
	b.WriteString("\n")
	b.WriteString(code)
	b.WriteString("\n```")
	return b.String()
}

// NormalizeModel trims the model identifier and substitutes DefaultModel
// when it is blank.
func NormalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return DefaultModel
	}
	return model
}
