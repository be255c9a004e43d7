package widget

// Nav is the open/closed state of the navigation panel.
type Nav struct {
	Open bool `json:"open"`
}

// Toggle flips the panel.
func (n Nav) Toggle() Nav {
	n.Open = !n.Open
	return n
}

// Close hides the panel regardless of its current state. It runs whenever a
// navigation link is activated.
func (n Nav) Close() Nav {
	n.Open = false
	return n
}
