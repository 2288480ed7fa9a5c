package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// chainLink is implemented by zerr errors.
type chainLink interface {
	Message() string
	Metadata() map[string]any
}

// collectErrorEntries walks the chain of zerr errors down to the first
// standard error, whose full text ends the chain.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for current := err; current != nil; {
		link, ok := current.(chainLink)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		if link.Message() == "" {
			// Metadata-only level: attach it to the closest message.
			if len(entries) > 0 {
				last := &entries[len(entries)-1]
				if last.Metadata == nil {
					last.Metadata = map[string]any{}
				}
				maps.Copy(last.Metadata, link.Metadata())
			} else {
				pending = link.Metadata()
			}
		} else {
			meta := link.Metadata()
			if pending != nil {
				maps.Copy(meta, pending)
				pending = nil
			}
			entries = append(entries, ErrorEntry{Message: link.Message(), Metadata: meta})
		}
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as:
//
//	Error: outer
//	       key: value
//
//	  Caused by:
//	    → inner
func formatErrorEntries(entries []ErrorEntry) string {
	lines := make([]string, 0, len(entries)*2)

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
