package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrBrokenAnchor marks an in-page link whose target no section exposes.
var ErrBrokenAnchor = errors.New("broken anchor")

// ErrDuplicateAnchor marks two sections claiming the same anchor.
var ErrDuplicateAnchor = errors.New("duplicate anchor")

// maxSuggestionDistance bounds how different a suggested anchor may be.
const maxSuggestionDistance = 3

// Validate checks the anchor contract: every in-page link must land on an
// anchor some section exposes, and anchors must be unique. All problems are
// returned joined.
func (p *Page) Validate() error {
	var errs []error
	known := map[string]string{}
	var names []string
	for _, a := range p.Anchors() {
		if owner, ok := known[a.Anchor]; ok {
			errs = append(errs, fmt.Errorf("%w: #%s on %s and %s", ErrDuplicateAnchor, a.Anchor, owner, a.Section))
			continue
		}
		known[a.Anchor] = a.Section
		names = append(names, a.Anchor)
	}
	for _, pl := range p.Links() {
		if !pl.Link.InPage() {
			continue
		}
		target := pl.Link.Anchor()
		if target == "" {
			// "#" is the top of the page.
			continue
		}
		if _, ok := known[target]; ok {
			continue
		}
		err := fmt.Errorf("%w: %s link %q points at #%s", ErrBrokenAnchor, pl.Where, pl.Link.Label, target)
		if suggestion := Suggest(target, names); suggestion != "" {
			err = fmt.Errorf("%w (did you mean #%s?)", err, suggestion)
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Suggest returns the candidate closest to target by edit distance, or "" when
// nothing is close enough.
func Suggest(target string, candidates []string) string {
	target = strings.ToLower(strings.TrimSpace(target))
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(target, strings.ToLower(c))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
