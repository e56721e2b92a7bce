package action

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Parse extracts embedded action objects from LLM output. Blocks follow the
// prompt convention of a bare JSON object opening with a "type" field:
//
//	{"type":"add_goals","items":["learn guitar"]}
//
// Matching is a balanced-brace scan (string- and escape-aware), not a regex,
// so nested objects inside payloads are handled. A balanced block that fails
// JSON parsing is stripped from the text but produces no action. An
// unterminated block leaves the text untouched.
func Parse(text string) (string, []Action) {
	var actions []Action
	type span struct{ start, end int }
	var removed []span

	for i := 0; i < len(text); {
		open := strings.IndexByte(text[i:], '{')
		if open < 0 {
			break
		}
		start := i + open
		if !hasTypePrefix(text[start:]) {
			i = start + 1
			continue
		}
		end, ok := scanBalanced(text, start)
		if !ok {
			i = start + 1
			continue
		}
		block := text[start:end]
		removed = append(removed, span{start, end})
		if a, ok := parseBlock(block); ok {
			actions = append(actions, a)
		}
		i = end
	}

	if len(removed) == 0 {
		return tidy(text), actions
	}

	var b strings.Builder
	prev := 0
	for _, s := range removed {
		b.WriteString(text[prev:s.start])
		prev = s.end
	}
	b.WriteString(text[prev:])
	return tidy(b.String()), actions
}

// hasTypePrefix reports whether s opens a brace followed (modulo whitespace)
// by a "type" key, the convention every prompt revision used.
func hasTypePrefix(s string) bool {
	if len(s) == 0 || s[0] != '{' {
		return false
	}
	rest := strings.TrimLeftFunc(s[1:], unicode.IsSpace)
	if !strings.HasPrefix(rest, `"type"`) {
		return false
	}
	rest = strings.TrimLeftFunc(rest[len(`"type"`):], unicode.IsSpace)
	return strings.HasPrefix(rest, ":")
}

// scanBalanced returns the index just past the brace that closes the object
// opening at start. JSON string literals and escapes are honored.
func scanBalanced(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func parseBlock(block string) (Action, bool) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(block), &probe); err != nil {
		return Action{}, false
	}
	if probe.Type == "" {
		return Action{}, false
	}
	return Action{Type: probe.Type, Raw: json.RawMessage(block)}, true
}

// tidy trims the cleaned reply and drops code fences left empty after block
// removal.
func tidy(text string) string {
	text = stripEmptyFences(text)
	return strings.TrimSpace(text)
}

func stripEmptyFences(text string) string {
	var b strings.Builder
	i := 0
	for {
		open := strings.Index(text[i:], "```")
		if open < 0 {
			b.WriteString(text[i:])
			return b.String()
		}
		open += i
		end := strings.Index(text[open+3:], "```")
		if end < 0 {
			b.WriteString(text[i:])
			return b.String()
		}
		end += open + 3
		inner := strings.TrimSpace(text[open+3 : end])
		inner = strings.TrimSpace(strings.TrimPrefix(inner, "json"))
		if inner == "" {
			b.WriteString(text[i:open])
			i = end + 3
			continue
		}
		b.WriteString(text[i : end+3])
		i = end + 3
	}
}
