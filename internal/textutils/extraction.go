// Package textutils provides text cleanup utilities for model-generated replies.
package textutils

import (
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON returns the JSON document embedded in a model reply.
// Replies often wrap the document in markdown code fences or pad it with
// prose; the fences and any surrounding text are stripped. A reply with
// no recognizable document comes back trimmed but otherwise untouched,
// leaving the decode error to the caller.
func ExtractJSON(reply string) string {
	reply = strings.TrimSpace(reply)

	if matches := fencePattern.FindStringSubmatch(reply); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start >= 0 && end > start {
		return reply[start : end+1]
	}

	return reply
}
