// Package tui renders the landing page in the terminal with bubbletea.
//
// The whole page is rendered into one scrollable viewport. The interactive
// controls (navigation menu, FAQ accordion, buyer/agent choice and the
// early-access form) keep their state in internal/widget; this package only
// maps keys onto widget transitions and redraws.
package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/boardpack/internal/config"
	"github.com/kingrea/boardpack/internal/content"
	"github.com/kingrea/boardpack/internal/widget"
)

const (
	defaultWidth     = 80
	defaultHeight    = 24
	defaultEmailHint = "Please enter a valid email address."

	// chromeHeight is the header (two lines) plus status and help lines.
	chromeHeight = 4
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithScheduler replaces the event-loop scheduler used for the form reset.
func WithScheduler(scheduler widget.Scheduler) AppOption {
	return func(a *App) {
		if scheduler != nil {
			a.scheduler = scheduler
		}
	}
}

// WithReporter sets where captured leads are sent.
func WithReporter(reporter widget.Reporter) AppOption {
	return func(a *App) {
		a.reporter = reporter
	}
}

// WithContent renders page instead of loading the configured content.
func WithContent(page *content.Page) AppOption {
	return func(a *App) {
		if page != nil {
			a.page = page
		}
	}
}

// WithLogger injects the diagnostics logger.
func WithLogger(logger widget.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// navItem implements list.Item for the navigation menu.
type navItem struct {
	link content.Link
}

func (i navItem) Title() string       { return i.link.Label }
func (i navItem) Description() string { return i.link.Href }
func (i navItem) FilterValue() string { return i.link.Label }

// App is the bubbletea model for the terminal page.
type App struct {
	config *config.Config
	page   *content.Page
	logger widget.Logger
	keys   keyMap
	help   help.Model

	// Widget state
	nav        widget.Nav
	accordion  widget.Accordion
	submission *widget.Submission

	loop      *loopScheduler
	scheduler widget.Scheduler
	reporter  widget.Reporter

	// UI components
	viewport viewport.Model
	navMenu  list.Model
	email    textinput.Model

	ring      []focusTarget
	focus     int // index into ring, -1 when the page itself has focus
	rendered  renderedPage
	hint      string
	statusMsg string

	width  int
	height int

	closeOnce sync.Once
}

// NewApp builds the page model. cfg may be nil, in which case the bundled
// page and default form settings are used.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	loop := newLoopScheduler()
	app := &App{
		config:    cfg,
		keys:      newKeyMap(),
		help:      help.New(),
		loop:      loop,
		scheduler: loop,
		focus:     -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	if app.page == nil {
		path := ""
		if cfg != nil {
			path = cfg.ContentPath()
		}
		page, err := content.Load(path)
		if err != nil {
			return nil, err
		}
		app.page = page
	}

	pattern := ""
	delay := widget.DefaultResetDelay
	if cfg != nil {
		pattern = cfg.EmailPattern()
		delay = cfg.ResetDelay()
	}
	validator, err := widget.PatternValidator(pattern)
	if err != nil {
		return nil, fmt.Errorf("tui: email pattern: %w", err)
	}
	app.submission = widget.NewSubmission(
		widget.WithResetDelay(delay),
		widget.WithScheduler(app.scheduler),
		widget.WithValidator(validator),
		widget.WithReporter(app.reporter),
		widget.WithLogger(app.logger),
	)

	email := textinput.New()
	email.Placeholder = app.page.CTA.EmailPlaceholder
	email.Prompt = "> "
	email.CharLimit = 254
	app.email = email

	items := make([]list.Item, 0, len(app.page.NavLinks()))
	for _, link := range app.page.NavLinks() {
		items = append(items, navItem{link: link})
	}
	navMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	navMenu.Title = app.page.Brand.Name
	navMenu.SetShowStatusBar(false)
	navMenu.SetFilteringEnabled(false)
	navMenu.SetShowHelp(false)
	navMenu.KeyMap.Quit.SetEnabled(false)
	navMenu.KeyMap.ForceQuit.SetEnabled(false)
	app.navMenu = navMenu

	app.viewport = viewport.New(defaultWidth, defaultHeight-chromeHeight)
	app.ring = focusRing(app.page)
	app.resize(defaultWidth, defaultHeight)
	return app, nil
}

// Close tears down the form. Safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.submission.Close()
		a.loop.stop()
	})
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.loop.wait()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case timerFiredMsg:
		if msg.fire != nil {
			msg.fire()
		}
		a.syncEmail()
		a.refresh()
		return a, a.loop.wait()

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	// Cursor blink and other component messages.
	if a.focused().kind == focusEmail {
		var cmd tea.Cmd
		a.email, cmd = a.email.Update(msg)
		a.refresh()
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a.quit()
	}
	if a.nav.Open {
		return a.handleNavKey(msg)
	}
	if a.focused().kind == focusEmail {
		return a.handleEmailKey(msg)
	}

	a.statusMsg = ""
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Menu):
		a.nav = a.nav.Toggle()
		return a, nil
	case key.Matches(msg, a.keys.Close):
		return a, a.setFocus(-1)
	case key.Matches(msg, a.keys.Next):
		return a, a.moveFocus(1)
	case key.Matches(msg, a.keys.Prev):
		return a, a.moveFocus(-1)
	case key.Matches(msg, a.keys.Activate):
		a.activate()
		return a, nil
	case key.Matches(msg, a.keys.Top):
		a.viewport.GotoTop()
		return a, nil
	case key.Matches(msg, a.keys.Bottom):
		a.viewport.GotoBottom()
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.nav = a.nav.Close()
		return a, nil
	case key.Matches(msg, a.keys.Menu):
		a.nav = a.nav.Toggle()
		return a, nil
	case msg.String() == "q":
		return a.quit()
	case msg.Type == tea.KeyEnter:
		if item, ok := a.navMenu.SelectedItem().(navItem); ok {
			a.followLink(item.link)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.navMenu, cmd = a.navMenu.Update(msg)
	return a, cmd
}

func (a *App) handleEmailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		return a, a.setFocus(-1)
	case key.Matches(msg, a.keys.Next):
		return a, a.moveFocus(1)
	case key.Matches(msg, a.keys.Prev):
		return a, a.moveFocus(-1)
	case msg.Type == tea.KeyEnter:
		a.submit()
		return a, nil
	}
	var cmd tea.Cmd
	a.email, cmd = a.email.Update(msg)
	if value := a.email.Value(); value != a.submission.Email() {
		a.submission.SetEmail(value)
		a.hint = ""
	}
	a.refresh()
	return a, cmd
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.Close()
	return a, tea.Quit
}

// followLink closes the menu and scrolls to the link's target.
func (a *App) followLink(link content.Link) {
	a.nav = a.nav.Close()
	if !link.InPage() {
		a.statusMsg = "External link: " + link.Href
		return
	}
	a.jumpTo(link.Anchor())
}

func (a *App) jumpTo(anchor string) {
	if anchor == "" {
		a.viewport.GotoTop()
		return
	}
	offset, ok := a.rendered.anchors[anchor]
	if !ok {
		a.statusMsg = fmt.Sprintf("No section #%s on this page", anchor)
		a.logf("tui: link to missing anchor #%s", anchor)
		return
	}
	a.viewport.SetYOffset(offset)
}

func (a *App) activate() {
	target := a.focused()
	switch target.kind {
	case focusFAQ:
		a.accordion = a.accordion.Select(target.index)
	case focusBuyer:
		a.submission.SelectRole(widget.RoleBuyer)
	case focusAgent:
		a.submission.SelectRole(widget.RoleAgent)
	case focusSubmit:
		a.submit()
	case focusNone:
		return
	}
	a.refresh()
	a.reveal(target)
}

// submit runs the form's submit action. A rejected email leaves the form
// alone and shows the hint.
func (a *App) submit() {
	if !a.submission.CanSubmit() {
		return
	}
	a.submission.SetEmail(a.email.Value())
	if !a.submission.Submit() {
		a.hint = strings.TrimSpace(a.page.CTA.InvalidEmailHint)
		if a.hint == "" {
			a.hint = defaultEmailHint
		}
		a.refresh()
		return
	}
	a.hint = ""
	a.logf("tui: early access requested as %s", a.submission.Role())
	a.refresh()
}

// syncEmail copies the form's email into the input after a reset.
func (a *App) syncEmail() {
	if a.email.Value() != a.submission.Email() {
		a.email.SetValue(a.submission.Email())
	}
}

func (a *App) focused() focusTarget {
	if a.focus < 0 || a.focus >= len(a.ring) {
		return focusTarget{kind: focusNone}
	}
	return a.ring[a.focus]
}

func (a *App) moveFocus(delta int) tea.Cmd {
	n := len(a.ring)
	if n == 0 {
		return nil
	}
	next := 0
	switch {
	case a.focus < 0 && delta < 0:
		next = n - 1
	case a.focus >= 0:
		next = ((a.focus+delta)%n + n) % n
	}
	return a.setFocus(next)
}

func (a *App) setFocus(index int) tea.Cmd {
	prev := a.focused()
	a.focus = index
	next := a.focused()
	var cmd tea.Cmd
	if prev.kind == focusEmail && next.kind != focusEmail {
		a.email.Blur()
	}
	if next.kind == focusEmail && prev.kind != focusEmail {
		cmd = a.email.Focus()
	}
	a.refresh()
	a.reveal(next)
	return cmd
}

// reveal scrolls just enough to bring target on screen.
func (a *App) reveal(target focusTarget) {
	name := target.mark()
	if name == "" {
		return
	}
	line, ok := a.rendered.marks[name]
	if !ok {
		return
	}
	top := a.viewport.YOffset
	if line < top || line >= top+a.viewport.Height-2 {
		a.viewport.SetYOffset(max(0, line-a.viewport.Height/3))
	}
}

func (a *App) resize(width, height int) {
	a.width = max(20, width)
	a.height = max(chromeHeight+1, height)
	a.viewport.Width = a.width
	a.viewport.Height = a.height - chromeHeight
	a.navMenu.SetSize(min(a.width-4, 48), min(a.height-chromeHeight-2, 14))
	a.email.Width = max(10, min(48, a.width-12))
	a.help.Width = a.width
	a.refresh()
}

func (a *App) refresh() {
	a.rendered = renderPage(pageView{
		page:       a.page,
		width:      a.width,
		accordion:  a.accordion,
		submission: a.submission.Snapshot(),
		canSubmit:  a.submission.CanSubmit(),
		focus:      a.focused(),
		emailField: a.email.View(),
		hint:       a.hint,
	})
	a.viewport.SetContent(a.rendered.body)
}

func (a *App) logf(format string, args ...any) {
	if a.logger == nil {
		return
	}
	a.logger.Printf(format, args...)
}

// View renders the current state.
func (a *App) View() string {
	body := a.viewport.View()
	if a.nav.Open {
		body = lipgloss.Place(a.width, a.viewport.Height, lipgloss.Left, lipgloss.Top,
			panelStyle.Render(a.navMenu.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), body, a.renderStatus(), a.help.View(a.keys))
}

func (a *App) renderHeader() string {
	mark := headerStyle.Render("[" + a.page.Brand.Mark + "] " + a.page.Brand.Name)
	brand := mark
	if a.page.Brand.Tagline != "" {
		brand += " " + taglineStyle.Render(a.page.Brand.Tagline)
	}
	menu := "☰ menu (m)"
	if a.nav.Open {
		menu = "✕ close (m)"
	}
	right := mutedStyle.Render(menu)
	if a.width >= wideLayout {
		labels := make([]string, 0, len(a.page.Nav.Links))
		for _, link := range a.page.Nav.Links {
			labels = append(labels, link.Label)
		}
		right = mutedStyle.Render(strings.Join(labels, "  "))
		if a.page.Nav.CTA.Label != "" {
			right += "  " + buttonStyle.Padding(0, 1).Render(a.page.Nav.CTA.Label)
		}
	}
	if lipgloss.Width(brand)+lipgloss.Width(right)+1 > a.width {
		brand = mark
	}
	if lipgloss.Width(brand)+lipgloss.Width(right)+1 > a.width {
		right = mutedStyle.Render(menu)
	}
	gap := max(1, a.width-lipgloss.Width(brand)-lipgloss.Width(right))
	line := brand + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Width(a.width).
		MaxHeight(1).
		Render(line) + "\n" + mutedStyle.Render(strings.Repeat("─", a.width))
}

func (a *App) renderStatus() string {
	status := a.statusMsg
	if status == "" {
		status = fmt.Sprintf("%s · %3.f%%", a.page.Meta.Title, a.viewport.ScrollPercent()*100)
	}
	return statusStyle.Width(a.width).MaxHeight(1).Render(status)
}
