// Package sanitize neutralizes instruction-like phrases in user text
// before it is interpolated into a completion prompt.
// Reference: OWASP LLM Prompt Injection Prevention Cheat Sheet
// https://cheatsheetseries.owasp.org/cheatsheets/LLM_Prompt_Injection_Prevention_Cheat_Sheet.html
package sanitize

import (
	"regexp"
)

// instructionPatterns detects attempts to steer the model away from recommending books
var instructionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+|the\s+)?(previous|prior|above)\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+|the\s+)?(previous|prior|above)\s+(instructions|rules)`),
	regexp.MustCompile(`(?i)forget\s+(everything|all)\s+(above|before)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an|the|my)\s+(\w+\s+)?(assistant|ai|model|chatbot|bot)\b`),
	regexp.MustCompile(`(?i)(reveal|print|show|repeat)\s+(your|the)\s+(system\s+)?prompt`),
	regexp.MustCompile(`(?i)(developer|debug|jailbreak)\s+mode`),
	regexp.MustCompile(`(?im)^\s*(system|assistant)\s*:`),
}

// Input wraps instruction-like phrases in 【】 brackets so the model reads them
// as quoted text. Text with no such phrase is returned unchanged.
func Input(text string) string {
	result := text
	for _, pattern := range instructionPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			return "【" + match + "】"
		})
	}
	return result
}
