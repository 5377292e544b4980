// Package pane stores the line buffers behind the TUI's scrollable panes.
//
// Manager keeps, per pane, the rendered lines, the scroll offset in lines and
// the viewport height in lines. Offsets are clamped so a pane never scrolls
// past its last full page.
package pane

import (
	"slices"
	"sort"
	"sync"
)

// Manager holds per-pane content and scroll state.
type Manager struct {
	mu sync.RWMutex

	// lines stores the rendered content per pane ID
	lines map[string][]string

	// offsets stores the scroll position (line number) per pane
	offsets map[string]int

	// heights stores the number of visible lines per pane
	heights map[string]int

	// versions is bumped each time a pane's content changes
	versions map[string]uint64
}

// NewManager creates a new pane Manager with initialized maps.
func NewManager() *Manager {
	return &Manager{
		lines:    make(map[string][]string),
		offsets:  make(map[string]int),
		heights:  make(map[string]int),
		versions: make(map[string]uint64),
	}
}

// Create registers an empty pane. It is a no-op if the pane exists.
func (m *Manager) Create(id string, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lines[id]; ok {
		return
	}
	m.lines[id] = []string{}
	m.heights[id] = max(0, height)
}

// SetLines replaces a pane's content, creating the pane if needed.
// It reports whether the content changed.
func (m *Manager) SetLines(id string, lines []string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.lines[id]
	if ok && slices.Equal(current, lines) {
		return false
	}
	m.lines[id] = slices.Clone(lines)
	if m.lines[id] == nil {
		m.lines[id] = []string{}
	}
	m.versions[id]++
	m.clampLocked(id)
	return true
}

// AppendLines adds lines to the end of a pane, creating the pane if needed.
func (m *Manager) AppendLines(id string, lines ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lines[id]; !ok {
		m.lines[id] = []string{}
	}
	if len(lines) == 0 {
		return
	}
	m.lines[id] = append(m.lines[id], lines...)
	m.versions[id]++
}

// Lines returns a copy of a pane's content.
func (m *Manager) Lines(id string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.lines[id])
}

// Version returns a counter that changes whenever the pane's content does.
func (m *Manager) Version(id string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versions[id]
}

// Has reports whether the pane exists.
func (m *Manager) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.lines[id]
	return ok
}

// Remove deletes a pane and all of its state.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, id)
	delete(m.offsets, id)
	delete(m.heights, id)
	delete(m.versions, id)
}

// IDs returns the sorted IDs of every pane.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.lines))
	for id := range m.lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetHeight sets the number of visible lines and re-clamps the offset.
func (m *Manager) SetHeight(id string, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heights[id] = max(0, height)
	m.clampLocked(id)
}

// Height returns the number of visible lines.
func (m *Manager) Height(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.heights[id]
}

// LineCount returns the number of content lines in a pane.
func (m *Manager) LineCount(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines[id])
}

// Offset returns the current scroll offset.
func (m *Manager) Offset(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offsets[id]
}

// MaxScroll returns the largest valid offset.
func (m *Manager) MaxScroll(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxScrollLocked(id)
}

// Scroll moves the offset by delta lines, clamped to the valid range.
// Positive delta scrolls down. It returns the new offset.
func (m *Manager) Scroll(id string, delta int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offsets[id] = max(0, min(m.offsets[id]+delta, m.maxScrollLocked(id)))
	return m.offsets[id]
}

// ScrollToTop moves to the first line.
func (m *Manager) ScrollToTop(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offsets[id] = 0
	return 0
}

// ScrollToBottom moves to the last full page.
func (m *Manager) ScrollToBottom(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offsets[id] = m.maxScrollLocked(id)
	return m.offsets[id]
}

// AtBottom reports whether the pane shows its last line.
func (m *Manager) AtBottom(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offsets[id] >= m.maxScrollLocked(id)
}

// VisibleLines returns the lines inside the viewport.
func (m *Manager) VisibleLines(id string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines := m.lines[id]
	if len(lines) == 0 {
		return nil
	}
	start := max(0, min(m.offsets[id], len(lines)-1))
	end := min(start+m.heights[id], len(lines))
	return slices.Clone(lines[start:end])
}

// maxScrollLocked returns max scroll offset (caller must hold lock).
func (m *Manager) maxScrollLocked(id string) int {
	return max(0, len(m.lines[id])-m.heights[id])
}

// clampLocked keeps the offset within bounds (caller must hold write lock).
func (m *Manager) clampLocked(id string) {
	if m.offsets[id] > m.maxScrollLocked(id) {
		m.offsets[id] = m.maxScrollLocked(id)
	}
}
