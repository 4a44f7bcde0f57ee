package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// chainLink is implemented by zerr.Error.
type chainLink interface {
	Message() string
	Metadata() map[string]any
}

// collectErrorEntries walks a zerr chain. Each zerr link contributes its own
// message and metadata; the first non-zerr error contributes its full text and ends the walk.
func collectErrorEntries(err error) ([]string, []map[string]any) {
	var messages []string
	var metadata []map[string]any

	for current := err; current != nil; {
		link, ok := current.(chainLink)
		if !ok {
			messages = append(messages, current.Error())
			metadata = append(metadata, nil)
			break
		}
		// zerr.With on a non-zerr error produces a link with an empty message.
		if link.Message() != "" || len(link.Metadata()) > 0 {
			messages = append(messages, link.Message())
			metadata = append(metadata, link.Metadata())
		}
		current = errors.Unwrap(current)
	}

	return messages, metadata
}

func formatErrorEntries(messages []string, metadata []map[string]any) string {
	var lines []string

	for i, msg := range messages {
		parts := strings.Split(msg, "\n")
		head := parts[0]
		if i < len(metadata) && len(metadata[i]) > 0 {
			head += " " + formatMetadata(metadata[i])
		}

		if i == 0 {
			lines = append(lines, "Error: "+head)
			for _, p := range parts[1:] {
				lines = append(lines, "       "+p)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+head)
		for _, p := range parts[1:] {
			lines = append(lines, "      "+p)
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(md map[string]any) string {
	keys := slices.Sorted(maps.Keys(md))
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, md[k]))
	}
	return "(" + strings.Join(pairs, ", ") + ")"
}
