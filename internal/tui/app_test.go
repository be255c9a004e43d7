package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/boardpack/internal/config"
	"github.com/kingrea/boardpack/internal/content"
	"github.com/kingrea/boardpack/internal/widget"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualScheduler hands timers to the test instead of the wall clock.
type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) widget.Timer {
	t := &manualTimer{fn: fn}
	s.timers = append(s.timers, t)
	return t
}

type lead struct {
	email string
	role  widget.Role
}

func newTestApp(t *testing.T) (*App, *manualScheduler, *[]lead) {
	t.Helper()
	scheduler := &manualScheduler{}
	var reported []lead
	app, err := NewApp(nil,
		WithScheduler(scheduler),
		WithReporter(widget.ReporterFunc(func(email string, role widget.Role) {
			reported = append(reported, lead{email: email, role: role})
		})),
	)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(app.Close)
	return app, scheduler, &reported
}

// send feeds messages straight into Update. Returned commands are dropped;
// they only drive cursor blinking and the wall-clock timer loop.
func send(t *testing.T, app *App, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var last tea.Cmd
	for _, msg := range msgs {
		model, cmd := app.Update(msg)
		got, ok := model.(*App)
		if !ok || got != app {
			t.Fatalf("update returned unexpected model %T", model)
		}
		last = cmd
	}
	return last
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

// focusOn tabs forward until target has focus.
func focusOn(t *testing.T, app *App, target focusTarget) {
	t.Helper()
	for i := 0; i <= len(app.ring); i++ {
		if app.focused() == target {
			return
		}
		send(t, app, keyOf(tea.KeyTab))
	}
	t.Fatalf("could not focus %+v", target)
}

func TestNewAppDefaults(t *testing.T) {
	app, _, _ := newTestApp(t)
	if app.nav.Open {
		t.Fatalf("nav should start closed")
	}
	if _, open := app.accordion.OpenIndex(); open {
		t.Fatalf("no faq item should start open")
	}
	if got := app.submission.Snapshot(); got.Phase != widget.PhaseIdle || got.Role != widget.RoleBuyer || got.Email != "" {
		t.Fatalf("unexpected initial form %+v", got)
	}
	if app.focused().kind != focusNone {
		t.Fatalf("nothing should be focused initially")
	}
	if want := len(app.page.FAQ.Entries) + 4; len(app.ring) != want {
		t.Fatalf("expected %d focus stops, got %d", want, len(app.ring))
	}
	view := app.View()
	if !strings.Contains(view, app.page.Brand.Name) {
		t.Fatalf("view should show the brand")
	}
}

func TestNewAppUsesConfig(t *testing.T) {
	cfg := &config.Config{Project: config.ProjectConfig{
		Submission: config.SubmissionConfig{ResetDelay: 5 * time.Second},
	}}
	app, err := NewApp(cfg, WithScheduler(&manualScheduler{}))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()
	if got := app.submission.ResetDelay(); got != 5*time.Second {
		t.Fatalf("reset delay = %s, want 5s", got)
	}
}

func TestNewAppRejectsBadPattern(t *testing.T) {
	cfg := &config.Config{Project: config.ProjectConfig{
		Submission: config.SubmissionConfig{EmailPattern: "(["},
	}}
	if _, err := NewApp(cfg); err == nil {
		t.Fatalf("expected invalid pattern error")
	}
}

func TestMenuTogglesAndCloses(t *testing.T) {
	app, _, _ := newTestApp(t)
	send(t, app, runes("m"))
	if !app.nav.Open {
		t.Fatalf("m should open the menu")
	}
	if !strings.Contains(app.View(), "Get early access") {
		t.Fatalf("menu should list the early access link")
	}
	send(t, app, runes("m"))
	if app.nav.Open {
		t.Fatalf("second m should close the menu")
	}
	send(t, app, runes("m"), keyOf(tea.KeyEsc))
	if app.nav.Open {
		t.Fatalf("esc should close the menu")
	}
}

func TestMenuLinkClosesAndJumps(t *testing.T) {
	app, _, _ := newTestApp(t)
	send(t, app, runes("m"), keyOf(tea.KeyDown))
	item, ok := app.navMenu.SelectedItem().(navItem)
	if !ok || item.link.Anchor() != "features" {
		t.Fatalf("expected features link selected, got %+v", app.navMenu.SelectedItem())
	}
	send(t, app, keyOf(tea.KeyEnter))
	if app.nav.Open {
		t.Fatalf("activating a link must close the menu")
	}
	want, ok := app.rendered.anchors["features"]
	if !ok {
		t.Fatalf("features anchor not rendered")
	}
	if app.viewport.YOffset != want {
		t.Fatalf("expected scroll to line %d, got %d", want, app.viewport.YOffset)
	}
}

func TestMenuLinkToMissingAnchor(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.followLink(content.Link{Label: "Nowhere", Href: "#nowhere"})
	if app.nav.Open {
		t.Fatalf("menu must close even for a broken link")
	}
	if !strings.Contains(app.statusMsg, "#nowhere") {
		t.Fatalf("expected status about missing anchor, got %q", app.statusMsg)
	}
}

func TestAccordionThroughKeys(t *testing.T) {
	app, _, _ := newTestApp(t)
	focusOn(t, app, focusTarget{kind: focusFAQ, index: 0})
	send(t, app, keyOf(tea.KeyEnter))
	if idx, open := app.accordion.OpenIndex(); !open || idx != 0 {
		t.Fatalf("expected item 0 open, got %d %v", idx, open)
	}
	send(t, app, keyOf(tea.KeyTab), keyOf(tea.KeyEnter))
	if idx, open := app.accordion.OpenIndex(); !open || idx != 1 {
		t.Fatalf("expected item 1 open, got %d %v", idx, open)
	}
	if app.accordion.IsOpen(0) {
		t.Fatalf("opening item 1 must close item 0")
	}
	send(t, app, keyOf(tea.KeyEnter))
	if _, open := app.accordion.OpenIndex(); open {
		t.Fatalf("selecting the open item should close it")
	}
}

func TestSubmitAndReset(t *testing.T) {
	app, scheduler, reported := newTestApp(t)
	focusOn(t, app, focusTarget{kind: focusEmail})
	send(t, app, runes("buyer@example.com"), keyOf(tea.KeyEnter))

	if got := app.submission.Phase(); got != widget.PhaseSubmitted {
		t.Fatalf("expected submitted, got %s", got)
	}
	if len(*reported) != 1 || (*reported)[0] != (lead{email: "buyer@example.com", role: widget.RoleBuyer}) {
		t.Fatalf("unexpected reports %+v", *reported)
	}
	if !strings.Contains(app.rendered.body, "Thanks!") {
		t.Fatalf("expected confirmation label while submitted")
	}
	if len(scheduler.timers) != 1 {
		t.Fatalf("expected one reset timer, got %d", len(scheduler.timers))
	}

	send(t, app, timerFiredMsg{fire: scheduler.timers[0].fn})
	if got := app.submission.Phase(); got != widget.PhaseIdle {
		t.Fatalf("expected idle after reset, got %s", got)
	}
	if app.email.Value() != "" || app.submission.Email() != "" {
		t.Fatalf("reset must clear the email field")
	}
	if !strings.Contains(app.rendered.body, app.page.CTA.SubmitLabel) {
		t.Fatalf("expected submit label after reset")
	}
}

func TestInvalidEmailShowsHint(t *testing.T) {
	app, scheduler, reported := newTestApp(t)
	focusOn(t, app, focusTarget{kind: focusEmail})
	send(t, app, runes("not-an-email"), keyOf(tea.KeyEnter))

	if got := app.submission.Phase(); got != widget.PhaseIdle {
		t.Fatalf("invalid email must not submit, got %s", got)
	}
	if app.hint != app.page.CTA.InvalidEmailHint {
		t.Fatalf("expected hint %q, got %q", app.page.CTA.InvalidEmailHint, app.hint)
	}
	if len(*reported) != 0 || len(scheduler.timers) != 0 {
		t.Fatalf("invalid submit must not report or arm a timer")
	}
	send(t, app, runes("x"))
	if app.hint != "" {
		t.Fatalf("editing should clear the hint")
	}
}

func TestSecondSubmitIsInert(t *testing.T) {
	app, scheduler, reported := newTestApp(t)
	focusOn(t, app, focusTarget{kind: focusEmail})
	send(t, app, runes("buyer@example.com"), keyOf(tea.KeyEnter), keyOf(tea.KeyEnter))
	focusOn(t, app, focusTarget{kind: focusSubmit})
	send(t, app, keyOf(tea.KeyEnter))
	if len(*reported) != 1 {
		t.Fatalf("expected a single report, got %d", len(*reported))
	}
	if len(scheduler.timers) != 1 {
		t.Fatalf("expected a single timer, got %d", len(scheduler.timers))
	}
}

func TestAgentSubmission(t *testing.T) {
	app, _, reported := newTestApp(t)
	focusOn(t, app, focusTarget{kind: focusAgent})
	send(t, app, keyOf(tea.KeyEnter))
	if app.submission.Role() != widget.RoleAgent {
		t.Fatalf("expected agent role")
	}
	focusOn(t, app, focusTarget{kind: focusEmail})
	send(t, app, runes("agent@example.com"))
	focusOn(t, app, focusTarget{kind: focusSubmit})
	send(t, app, keyOf(tea.KeyEnter))
	if len(*reported) != 1 || (*reported)[0].role != widget.RoleAgent {
		t.Fatalf("expected agent report, got %+v", *reported)
	}
}

func TestEmailFieldCapturesShortcuts(t *testing.T) {
	app, _, _ := newTestApp(t)
	focusOn(t, app, focusTarget{kind: focusEmail})
	send(t, app, runes("q"), runes("m"))
	if !app.submission.CanSubmit() {
		t.Fatalf("typing q in the email field must not quit")
	}
	if app.nav.Open {
		t.Fatalf("typing m in the email field must not open the menu")
	}
	if got := app.email.Value(); got != "qm" {
		t.Fatalf("expected typed value qm, got %q", got)
	}
}

func TestQuitCancelsPendingReset(t *testing.T) {
	app, scheduler, _ := newTestApp(t)
	focusOn(t, app, focusTarget{kind: focusEmail})
	send(t, app, runes("buyer@example.com"), keyOf(tea.KeyEnter))
	cmd := send(t, app, keyOf(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !scheduler.timers[0].stopped {
		t.Fatalf("quitting must cancel the reset timer")
	}
	scheduler.timers[0].fn()
	if app.submission.Phase() != widget.PhaseSubmitted {
		t.Fatalf("a late reset after teardown must be inert")
	}
	app.Close()
}

func TestNarrowHeaderHidesInlineNav(t *testing.T) {
	app, _, _ := newTestApp(t)
	send(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(app.renderHeader(), "Pricing") {
		t.Fatalf("wide header should list nav links")
	}
	send(t, app, tea.WindowSizeMsg{Width: 50, Height: 30})
	if strings.Contains(app.renderHeader(), "Pricing") {
		t.Fatalf("narrow header should fall back to the menu")
	}
	if app.viewport.Height != 30-chromeHeight {
		t.Fatalf("viewport height = %d", app.viewport.Height)
	}
}
