// Package jsonx recovers structured data from language-model replies that
// were asked for JSON but may wrap it in prose, code fences, or leave
// trailing commas.
package jsonx

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoObject is returned when no JSON object can be recovered from the text.
var ErrNoObject = errors.New("no JSON object found in text")

var (
	fenceOpenPattern  = regexp.MustCompile("^```(?:json|JSON)?[ \t]*\n?")
	trailingCommaExpr = regexp.MustCompile(`,\s*([\]}])`)
)

// ExtractObject recovers a JSON object from model output. Attempts, in order:
// strict parse of the whole text, code-fence stripping, the first-`{` to
// last-`}` span, trailing-comma removal, and finally a lenient gjson pass.
// Returns ErrNoObject when every attempt fails.
func ExtractObject(text string) (map[string]interface{}, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, ErrNoObject
	}

	if m := tryStrict(s); m != nil {
		return m, nil
	}

	s = StripFences(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, ErrNoObject
	}
	candidate := s[start : end+1]

	if m := tryStrict(candidate); m != nil {
		return m, nil
	}

	scrubbed := trailingCommaExpr.ReplaceAllString(candidate, "$1")
	if m := tryStrict(scrubbed); m != nil {
		return m, nil
	}

	// Last resort: gjson tolerates sloppier input than encoding/json.
	if v, ok := gjson.Parse(scrubbed).Value().(map[string]interface{}); ok && len(v) > 0 {
		return v, nil
	}

	return nil, ErrNoObject
}

// ExtractInto unmarshals model output into out, applying the same fallback
// ladder as ExtractObject but for arbitrary target shapes (arrays included).
func ExtractInto(text string, out interface{}) error {
	s := strings.TrimSpace(text)
	if s == "" {
		return ErrNoObject
	}

	if json.Unmarshal([]byte(s), out) == nil {
		return nil
	}

	s = StripFences(s)

	start, end := delimiterSpan(s)
	if start < 0 || end <= start {
		return ErrNoObject
	}
	candidate := s[start : end+1]

	if json.Unmarshal([]byte(candidate), out) == nil {
		return nil
	}

	scrubbed := trailingCommaExpr.ReplaceAllString(candidate, "$1")
	if json.Unmarshal([]byte(scrubbed), out) == nil {
		return nil
	}

	// Last resort: gjson, then re-marshal into the target shape.
	if res := gjson.Parse(scrubbed); res.IsObject() || res.IsArray() {
		if b, err := json.Marshal(res.Value()); err == nil && json.Unmarshal(b, out) == nil {
			return nil
		}
	}

	return ErrNoObject
}

// StripFences removes a leading/trailing markdown code fence, optionally
// tagged as JSON, from the text.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	s = fenceOpenPattern.ReplaceAllString(s, "")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func tryStrict(s string) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}

// delimiterSpan finds the span from the first opening brace or bracket to
// the matching last closer. Nested delimiters make a non-greedy match wrong
// here: the span runs to the final closer in the text.
func delimiterSpan(s string) (int, int) {
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start := objStart
	closer := "}"
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
		closer = "]"
	}
	if start < 0 {
		return -1, -1
	}
	return start, strings.LastIndex(s, closer)
}
