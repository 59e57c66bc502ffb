package palette

import "strings"

// keySep joins path segments inside a collapse key. Platform, category, and
// type names come from catalog data and may contain spaces but not pipes.
const keySep = "|"

// Path key builders for the three taxonomy levels. Keys are stable across
// sessions for the same catalog, so persisted UI state stays valid.

// PlatformKey returns the collapse key of a platform row, e.g. "plat|AWS".
func PlatformKey(platform string) string {
	return "plat" + keySep + platform
}

// CategoryKey returns the collapse key of a category row,
// e.g. "cat|AWS|Compute".
func CategoryKey(platform, category string) string {
	return strings.Join([]string{"cat", platform, category}, keySep)
}

// TypeKey returns the collapse key of a type row,
// e.g. "type|AWS|Compute|Serverless".
func TypeKey(platform, category, typ string) string {
	return strings.Join([]string{"type", platform, category, typ}, keySep)
}

// CollapseState tracks the expanded/collapsed flag of every palette tree row
// by its path key. Rows default to collapsed, matching the palette on catalog
// load. CollapseState is pure UI state, independent of the document model.
type CollapseState struct {
	collapsed map[string]bool
}

// New creates a fully collapsed state.
func New() *CollapseState {
	return &CollapseState{collapsed: make(map[string]bool)}
}

// Collapsed reports whether the row with the given key is collapsed.
// Keys never toggled report true.
func (s *CollapseState) Collapsed(key string) bool {
	if v, ok := s.collapsed[key]; ok {
		return v
	}
	return true
}

// Toggle flips the row with the given key and returns its new collapsed
// flag. Toggling a key for the first time expands it.
func (s *CollapseState) Toggle(key string) bool {
	next := !s.Collapsed(key)
	s.collapsed[key] = next
	return next
}

// Reset collapses every row again.
func (s *CollapseState) Reset() {
	s.collapsed = make(map[string]bool)
}
