package widget

import (
	"encoding/json"
)

// Accordion tracks which entry of a fixed list is expanded. At most one entry
// is open; the zero value has none open.
type Accordion struct {
	// open stores index+1 so the zero value means "none".
	open int
}

type accordionJSON struct {
	OpenIndex *int `json:"open_index"`
}

// OpenIndex reports the expanded entry, if any.
func (a Accordion) OpenIndex() (int, bool) {
	if a.open <= 0 {
		return 0, false
	}
	return a.open - 1, true
}

// IsOpen reports whether entry i is expanded.
func (a Accordion) IsOpen(i int) bool {
	idx, ok := a.OpenIndex()
	return ok && idx == i
}

// Select expands entry i, collapsing whatever was open. Selecting the open
// entry collapses it.
func (a Accordion) Select(i int) Accordion {
	if i < 0 {
		return a
	}
	if a.IsOpen(i) {
		return Accordion{}
	}
	return Accordion{open: i + 1}
}

// MarshalJSON encodes the state as {"open_index": n} or {"open_index": null}.
func (a Accordion) MarshalJSON() ([]byte, error) {
	var out accordionJSON
	if idx, ok := a.OpenIndex(); ok {
		out.OpenIndex = &idx
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (a *Accordion) UnmarshalJSON(data []byte) error {
	var in accordionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*a = Accordion{}
	if in.OpenIndex != nil && *in.OpenIndex >= 0 {
		a.open = *in.OpenIndex + 1
	}
	return nil
}
