// Package strictjson recovers a JSON object from model output that may wrap
// the payload in prose. It is a best-effort heuristic, not a relaxed parser:
// the fallback takes the greedy span from the first '{' to the last '}', so
// text containing two independent JSON fragments can mis-extract.
package strictjson

import (
	"encoding/json"
	"net/http"
	"strings"

	"tezgah/internal/domain"
)

// Parse decodes content into v. A direct parse is tried first; on failure
// the brace-delimited span is parsed instead. Both failures are classified
// 502 errors, the caller decides whether they end the request.
func Parse(content string, v any) error {
	if err := json.Unmarshal([]byte(content), v); err == nil {
		return nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return domain.NewAppError("model did not return valid JSON", http.StatusBadGateway)
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), v); err != nil {
		return domain.NewAppError("model JSON parsing failed", http.StatusBadGateway)
	}
	return nil
}
