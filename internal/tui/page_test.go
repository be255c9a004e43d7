package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/boardpack/internal/content"
	"github.com/kingrea/boardpack/internal/widget"
)

func TestRenderPageRecordsAnchors(t *testing.T) {
	t.Parallel()

	page, err := content.Default()
	if err != nil {
		t.Fatalf("default content: %v", err)
	}
	rendered := renderPage(pageView{page: page, width: 100, canSubmit: true})
	prev := -1
	for _, anchor := range page.Anchors() {
		line, ok := rendered.anchors[anchor.Anchor]
		if !ok {
			t.Fatalf("anchor %q not rendered", anchor.Anchor)
		}
		if line < prev {
			t.Fatalf("anchor %q at line %d comes before previous anchor at %d", anchor.Anchor, line, prev)
		}
		prev = line
	}
	lines := strings.Count(rendered.body, "\n") + 1
	for i := range page.FAQ.Entries {
		mark := fmt.Sprintf("faq:%d", i)
		line, ok := rendered.marks[mark]
		if !ok || line >= lines {
			t.Fatalf("mark %s = %d (ok=%v), body has %d lines", mark, line, ok, lines)
		}
	}
}

func TestRenderPageOpenItemAddsAnswer(t *testing.T) {
	t.Parallel()

	page := &content.Page{FAQ: content.FAQ{
		Title: "FAQ",
		Entries: []content.Entry{
			{Question: "First?", Answer: "alpha"},
			{Question: "Second?", Answer: "beta"},
		},
	}}
	closed := renderPage(pageView{page: page, width: 60})
	if strings.Contains(closed.body, "alpha") || strings.Contains(closed.body, "beta") {
		t.Fatalf("closed accordion must hide answers")
	}
	open := renderPage(pageView{page: page, width: 60, accordion: widget.Accordion{}.Select(1)})
	if strings.Contains(open.body, "alpha") || !strings.Contains(open.body, "beta") {
		t.Fatalf("only the open answer should render")
	}
	if open.marks["faq:1"] != closed.marks["faq:1"] {
		t.Fatalf("opening item 1 must not move its question")
	}
}

func TestRenderPageSubmitLabels(t *testing.T) {
	t.Parallel()

	page := &content.Page{CTA: content.CTA{SubmitLabel: "Apply", SubmittedLabel: "Thanks"}}
	idle := renderPage(pageView{page: page, width: 60, canSubmit: true})
	if !strings.Contains(idle.body, "Apply") || strings.Contains(idle.body, "Thanks") {
		t.Fatalf("idle form should show the submit label")
	}
	done := renderPage(pageView{page: page, width: 60, canSubmit: false})
	if strings.Contains(done.body, "Apply") || !strings.Contains(done.body, "Thanks") {
		t.Fatalf("submitted form should show the confirmation label")
	}
}

func TestRenderEmptyPage(t *testing.T) {
	t.Parallel()

	rendered := renderPage(pageView{page: &content.Page{}, width: 10})
	if len(rendered.anchors) != 0 {
		t.Fatalf("empty page should expose no anchors, got %v", rendered.anchors)
	}
	if _, ok := rendered.marks["submit"]; !ok {
		t.Fatalf("the form is always rendered")
	}
}

func TestFocusRingOrder(t *testing.T) {
	t.Parallel()

	page := &content.Page{FAQ: content.FAQ{Entries: make([]content.Entry, 2)}}
	got := focusRing(page)
	want := []focusTarget{
		{kind: focusFAQ, index: 0},
		{kind: focusFAQ, index: 1},
		{kind: focusBuyer},
		{kind: focusAgent},
		{kind: focusEmail},
		{kind: focusSubmit},
	}
	if len(got) != len(want) {
		t.Fatalf("ring = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ring[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoopSchedulerDeliversThroughLoop(t *testing.T) {
	t.Parallel()

	s := newLoopScheduler()
	defer s.stop()
	fired := false
	s.AfterFunc(time.Millisecond, func() { fired = true })
	msg, ok := s.wait()().(timerFiredMsg)
	if !ok {
		t.Fatalf("expected timerFiredMsg")
	}
	if fired {
		t.Fatalf("callback must not run on the timer goroutine")
	}
	msg.fire()
	if !fired {
		t.Fatalf("callback should run when the loop delivers it")
	}
}

func TestLoopSchedulerStop(t *testing.T) {
	t.Parallel()

	s := newLoopScheduler()
	timer := s.AfterFunc(time.Hour, func() {})
	if !timer.Stop() {
		t.Fatalf("stopping a pending timer should report true")
	}
	s.stop()
	s.stop()
	if msg := s.wait()(); msg != nil {
		t.Fatalf("stopped scheduler should yield nil, got %T", msg)
	}
}
