package tui

// Pane IDs.
const (
	// PaneFeed is the framed pane the controller observes by default.
	PaneFeed = "feed"
	// PaneDocument is the full-screen pane used for the document target.
	PaneDocument = "document"
)

// Layout offsets. These are the rows taken by fixed UI elements.
const (
	// HeaderHeight is the title row.
	HeaderHeight = 1
	// FooterHeight is the status row plus the help row.
	FooterHeight = 2
	// PaneBorderHeight is the top and bottom border of the framed pane.
	PaneBorderHeight = 2
	// PaneBorderWidth is the left and right border of the framed pane.
	PaneBorderWidth = 2
	// MinPaneHeight is the smallest viewport a pane is given.
	MinPaneHeight = 1
)

// FramedPaneHeight returns the number of content rows inside the framed pane
// for a terminal of the given height.
func FramedPaneHeight(termHeight int) int {
	return max(MinPaneHeight, termHeight-HeaderHeight-FooterHeight-PaneBorderHeight)
}

// DocumentHeight returns the number of content rows in document mode, where
// the body has no frame.
func DocumentHeight(termHeight int) int {
	return max(MinPaneHeight, termHeight-HeaderHeight-FooterHeight)
}
