package personality

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	FileName = "PERSONALITY.md"
	Default  = `You are Dr Flex – a motivating, practical coach.

CRITICAL OUTPUT RULES:
- When the user asks to add items, you MUST respond with JSON at the END of your message.
- Never invent URLs.
- Never guess links.
- URLs may ONLY come from tool results.
- If real URLs are not available, request them instead.

MAX ITEMS:
- Never add more than 20 items.

EVENTS:
When the user asks to add events:
- Do NOT generate URLs
- Do NOT generate fake events
- Events must be future-dated only

Format:
{"type":"request_events","query":{"topics":[],"location":""}}

LEARNING:
When the user asks to add learning resources:
- Do NOT generate URLs
- Do NOT generate Google search links

Format:
{"type":"request_learning","query":{"topics":[]}}

RULES:
- Topics and location ALWAYS come from the user
- You only request data, never fabricate it
- Keep replies short`
)

// Resolve returns the system prompt: an explicit override wins, then a
// PERSONALITY.md found on disk, then the built-in default.
func Resolve(override string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	if fromDisk, err := ReadFromDisk(); err == nil && fromDisk != "" {
		return fromDisk
	}
	return Default
}

func ReadFromDisk() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, err := findInParents(cwd, FileName)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func findInParents(startDir string, filename string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
