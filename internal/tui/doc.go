// Package tui provides the terminal user interface for lazyfeed.
//
// The UI is a bubbletea program that renders a feed of items in a scrollable
// pane. A scroll.Controller watches the pane through Host and asks the feed
// loader for another page when the reader nears the end.
//
// # Threading
//
// bubbletea runs Update on a single goroutine. Scheduler posts every timer
// and load completion back into the program as a message, so controller
// evaluations and state changes are applied on that goroutine and are never
// concurrent with rendering.
//
// # Targets
//
// Host maps scroll targets onto panes:
//
//	self      -> the framed feed pane ("feed")
//	document  -> the full-screen document pane ("document")
//	element   -> the pane with the element's ID
package tui
