package domain

import (
	"path/filepath"
	"strings"
)

// IgnoreSet decides which changed paths are irrelevant to the build.
// A fragment matches a path when it equals one of the path's components, or a
// consecutive run of components when the fragment itself contains separators.
type IgnoreSet struct {
	fragments [][]string
	raw       []string
}

// NewIgnoreSet builds an IgnoreSet from path fragments such as "target" or "build/gen".
func NewIgnoreSet(fragments ...string) IgnoreSet {
	set := IgnoreSet{}
	for _, f := range fragments {
		parts := splitPath(f)
		if len(parts) == 0 {
			continue
		}
		set.fragments = append(set.fragments, parts)
		set.raw = append(set.raw, f)
	}
	return set
}

// Fragments returns the fragments the set was built from.
func (s IgnoreSet) Fragments() []string {
	return append([]string(nil), s.raw...)
}

// Matches reports whether path contains any ignore fragment.
func (s IgnoreSet) Matches(path string) bool {
	parts := splitPath(path)
	for _, frag := range s.fragments {
		if containsRun(parts, frag) {
			return true
		}
	}
	return false
}

// Filter returns the paths that are not ignored, preserving order.
func (s IgnoreSet) Filter(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !s.Matches(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

func splitPath(p string) []string {
	p = filepath.ToSlash(filepath.Clean(p))
	var parts []string
	for part := range strings.SplitSeq(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

func containsRun(parts, run []string) bool {
	if len(run) > len(parts) {
		return false
	}
	for i := 0; i+len(run) <= len(parts); i++ {
		match := true
		for j := range run {
			if parts[i+j] != run[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
