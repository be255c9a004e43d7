// Package widget holds the interactive state of the landing page: the
// navigation toggle, the FAQ accordion, the buyer/agent choice and the
// early-access submission flow.
//
// Every widget is a small record with total transition methods and no
// knowledge of rendering. Nav, Accordion and Choice are values whose
// transitions return the next value. Submission owns a reset timer, so it is
// used through a pointer and must be closed when the page goes away.
//
// Nav, Accordion and Choice are plain values driven from a single event
// loop. Submission guards its state with a mutex because its reset callback
// may arrive on another goroutine, as it does with WallClock.
package widget
