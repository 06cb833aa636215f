package runner

import (
	"regexp"
	"strings"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// extractJSONPayload は AI 応答からJSON本体を取り出します。
// コードフェンス、裸のJSONオブジェクト、応答全文の順でフォールバックするのだ。
func extractJSONPayload(raw string) string {
	raw = strings.TrimSpace(raw)

	matches := jsonBlockRegex.FindStringSubmatch(raw)
	if len(matches) > 1 {
		return matches[1]
	}

	// Fallback 1: Find the outermost JSON object.
	firstBracket := strings.Index(raw, "{")
	lastBracket := strings.LastIndex(raw, "}")
	if firstBracket != -1 && lastBracket != -1 && lastBracket > firstBracket {
		return raw[firstBracket : lastBracket+1]
	}

	// Fallback 2: Assume the entire response is JSON.
	return raw
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
