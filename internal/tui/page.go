package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/boardpack/internal/content"
	"github.com/kingrea/boardpack/internal/widget"
)

// wideLayout is the width at which cards sit side by side and the header
// shows the inline navigation instead of the menu hint.
const wideLayout = 80

type focusKind int

const (
	focusNone focusKind = iota
	focusFAQ
	focusBuyer
	focusAgent
	focusEmail
	focusSubmit
)

// focusTarget is one stop on the tab ring.
type focusTarget struct {
	kind  focusKind
	index int
}

// mark names the line the target is rendered on.
func (f focusTarget) mark() string {
	switch f.kind {
	case focusFAQ:
		return fmt.Sprintf("faq:%d", f.index)
	case focusBuyer, focusAgent:
		return "role"
	case focusEmail:
		return "email"
	case focusSubmit:
		return "submit"
	default:
		return ""
	}
}

// focusRing lists the interactive controls of the page in reading order.
func focusRing(page *content.Page) []focusTarget {
	ring := make([]focusTarget, 0, len(page.FAQ.Entries)+4)
	for i := range page.FAQ.Entries {
		ring = append(ring, focusTarget{kind: focusFAQ, index: i})
	}
	return append(ring,
		focusTarget{kind: focusBuyer},
		focusTarget{kind: focusAgent},
		focusTarget{kind: focusEmail},
		focusTarget{kind: focusSubmit},
	)
}

// pageView is everything the renderer needs for one frame.
type pageView struct {
	page       *content.Page
	width      int
	accordion  widget.Accordion
	submission widget.SubmissionState
	canSubmit  bool
	focus      focusTarget
	emailField string
	hint       string
}

// renderedPage is the page body plus the line each anchor and control
// starts on.
type renderedPage struct {
	body    string
	anchors map[string]int
	marks   map[string]int
}

type pageBuilder struct {
	width   int
	blocks  []string
	lines   int
	anchors map[string]int
	marks   map[string]int
}

func newPageBuilder(width int) *pageBuilder {
	return &pageBuilder{
		width:   max(20, width),
		anchors: map[string]int{},
		marks:   map[string]int{},
	}
}

func (b *pageBuilder) anchor(id string) {
	if id = strings.TrimSpace(id); id != "" {
		b.anchors[id] = b.lines
	}
}

func (b *pageBuilder) mark(name string) {
	b.marks[name] = b.lines
}

func (b *pageBuilder) inner() int {
	return b.width - 4
}

// section starts a new section with a blank line above it.
func (b *pageBuilder) section(parts ...string) {
	b.add(sectionStyle.Width(b.width).Render(joinParts(parts)))
}

// line continues the current section.
func (b *pageBuilder) line(parts ...string) {
	b.add(lipgloss.NewStyle().Padding(0, 2).Width(b.width).Render(joinParts(parts)))
}

func (b *pageBuilder) add(block string) {
	b.blocks = append(b.blocks, block)
	b.lines += lipgloss.Height(block)
}

func (b *pageBuilder) result() renderedPage {
	return renderedPage{
		body:    strings.Join(b.blocks, "\n"),
		anchors: b.anchors,
		marks:   b.marks,
	}
}

func joinParts(parts []string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, kept...)
}

func renderPage(v pageView) renderedPage {
	b := newPageBuilder(v.width)
	p := v.page
	renderHero(b, p.Hero)
	renderProblem(b, p.Problem)
	renderSolution(b, p.Solution)
	renderHowItWorks(b, p.HowItWorks)
	renderAudiences(b, p.Audiences)
	renderFeatures(b, p.Features)
	renderTestimonials(b, p.Testimonials)
	renderPricing(b, p.Pricing)
	renderFAQ(b, p.FAQ, v)
	renderCTA(b, p.CTA, v)
	renderFooter(b, p.Footer)
	return b.result()
}

func renderHero(b *pageBuilder, hero content.Hero) {
	b.anchor(hero.Anchor)
	headline := titleStyle.Render(hero.Headline)
	if hero.Highlight != "" {
		headline = lipgloss.JoinVertical(lipgloss.Left, headline, eyebrowStyle.Render(hero.Highlight))
	}
	var badges []string
	for _, badge := range hero.Badges {
		badges = append(badges, checkStyle.Render("✓ ")+mutedStyle.Render(badge))
	}
	b.section(
		headline,
		"",
		bodyStyle.Render(hero.Body),
		"",
		renderLinks(hero.Primary, hero.Secondary),
		mutedStyle.Render(hero.Note),
		strings.Join(badges, "   "),
	)
}

func renderProblem(b *pageBuilder, problem content.Problem) {
	b.anchor(problem.Anchor)
	lines := []string{titleStyle.Render(problem.Title), bodyStyle.Render(problem.Intro)}
	for _, pain := range problem.Pains {
		lines = append(lines, warningStyle.Render("✗ ")+bodyStyle.Render(pain))
	}
	if problem.Warning != "" {
		lines = append(lines, "", badgeStyle.Render(problem.Warning))
	}
	b.section(lines...)
}

func renderSolution(b *pageBuilder, solution content.Solution) {
	b.anchor(solution.Anchor)
	b.section(eyebrowStyle.Render(strings.ToUpper(solution.Eyebrow)), titleStyle.Render(solution.Title), bodyStyle.Render(solution.Intro))
	for _, item := range solution.Items {
		b.line(checkStyle.Render("✓ ")+titleStyle.Render(item.Title), mutedStyle.Render("  "+item.Description))
	}
	if solution.Link.Label != "" {
		b.line(renderLinks(solution.Link))
	}
}

func renderHowItWorks(b *pageBuilder, how content.HowItWorks) {
	b.anchor(how.Anchor)
	b.section(eyebrowStyle.Render(strings.ToUpper(how.Eyebrow)), titleStyle.Render(how.Title))
	cards := make([]string, 0, len(how.Steps))
	for _, step := range how.Steps {
		cards = append(cards, joinParts([]string{
			eyebrowStyle.Render(step.Number) + " " + titleStyle.Render(step.Title),
			bodyStyle.Render(step.Description),
		}))
	}
	if len(cards) > 0 {
		b.line(renderGrid(cards, b.inner(), cardStyle))
	}
}

func renderAudiences(b *pageBuilder, audiences content.Audiences) {
	b.anchor(audiences.Anchor)
	b.section(titleStyle.Render(audiences.Title))
	cards := make([]string, 0, len(audiences.Groups))
	for _, group := range audiences.Groups {
		heading := titleStyle.Render(group.Title)
		if group.Badge != "" {
			heading += " " + badgeStyle.Render("["+group.Badge+"]")
		}
		lines := []string{heading}
		for _, benefit := range group.Benefits {
			lines = append(lines, checkStyle.Render("✓ ")+bodyStyle.Render(benefit))
		}
		cards = append(cards, joinParts(lines))
	}
	if len(cards) > 0 {
		b.line(renderGrid(cards, b.inner(), cardStyle))
	}
}

func renderFeatures(b *pageBuilder, features content.Features) {
	b.anchor(features.Anchor)
	b.section(eyebrowStyle.Render(strings.ToUpper(features.Eyebrow)), titleStyle.Render(features.Title))
	cards := make([]string, 0, len(features.Items))
	for _, item := range features.Items {
		cards = append(cards, joinParts([]string{titleStyle.Render(item.Title), mutedStyle.Render(item.Description)}))
	}
	if len(cards) > 0 {
		b.line(renderGrid(cards, b.inner(), cardStyle))
	}
}

func renderTestimonials(b *pageBuilder, t content.Testimonials) {
	b.anchor(t.Anchor)
	b.section(titleStyle.Render(t.Title))
	for _, quote := range t.Quotes {
		attribution := "- " + quote.Author
		if quote.Role != "" {
			attribution += ", " + quote.Role
		}
		b.line(cardStyle.Width(b.inner() - 2).Render(joinParts([]string{
			bodyStyle.Italic(true).Render("“" + quote.Quote + "”"),
			mutedStyle.Render(attribution),
		})))
	}
}

func renderPricing(b *pageBuilder, pricing content.Pricing) {
	b.anchor(pricing.Anchor)
	b.section(titleStyle.Render(pricing.Title), mutedStyle.Render(pricing.Subtitle))
	cards := make([]string, 0, len(pricing.Plans))
	styles := make([]lipgloss.Style, 0, len(pricing.Plans))
	for _, plan := range pricing.Plans {
		heading := titleStyle.Render(plan.Name)
		if plan.Badge != "" {
			heading += " " + badgeStyle.Render("["+plan.Badge+"]")
		}
		lines := []string{
			heading,
			mutedStyle.Render(plan.Subtitle),
			eyebrowStyle.Render(plan.Price),
			bodyStyle.Render(plan.Description),
			"",
		}
		for _, feature := range plan.Features {
			lines = append(lines, checkStyle.Render("✓ ")+bodyStyle.Render(feature))
		}
		if plan.CTA.Label != "" {
			lines = append(lines, "", renderLinks(plan.CTA))
		}
		cards = append(cards, joinParts(lines))
		if plan.Highlighted {
			styles = append(styles, highlightCardStyle)
		} else {
			styles = append(styles, cardStyle)
		}
	}
	if len(cards) > 0 {
		b.line(renderStyledGrid(cards, styles, b.inner()))
	}
}

func renderFAQ(b *pageBuilder, faq content.FAQ, v pageView) {
	b.anchor(faq.Anchor)
	b.section(titleStyle.Render(faq.Title))
	for i, entry := range faq.Entries {
		b.mark(focusTarget{kind: focusFAQ, index: i}.mark())
		marker := "+"
		if v.accordion.IsOpen(i) {
			marker = "−"
		}
		question := marker + " " + entry.Question
		if v.focus == (focusTarget{kind: focusFAQ, index: i}) {
			question = focusedStyle.Render(question)
		} else {
			question = titleStyle.Render(question)
		}
		parts := []string{question}
		if v.accordion.IsOpen(i) {
			parts = append(parts, lipgloss.NewStyle().PaddingLeft(2).Width(b.inner()).Render(bodyStyle.Render(entry.Answer)))
		}
		b.line(parts...)
	}
}

func renderCTA(b *pageBuilder, cta content.CTA, v pageView) {
	b.anchor(cta.Anchor)
	b.section(titleStyle.Render(cta.Title), bodyStyle.Render(cta.Body))

	b.anchor(cta.RoleAnchor)
	b.mark("role")
	b.line("", renderRoleOption(cta.BuyerLabel, widget.RoleBuyer, focusBuyer, v)+"   "+renderRoleOption(cta.AgentLabel, widget.RoleAgent, focusAgent, v))

	b.mark("email")
	fieldStyle := cardStyle
	if v.focus.kind == focusEmail {
		fieldStyle = panelStyle
	}
	b.line(mutedStyle.Render(cta.EmailLabel), fieldStyle.Render(v.emailField))

	b.mark("submit")
	var button string
	if v.canSubmit {
		label := cta.SubmitLabel
		if v.focus.kind == focusSubmit {
			label = "▶ " + label
		}
		button = buttonStyle.Render(label)
	} else {
		button = disabledStyle.Render(cta.SubmittedLabel)
	}
	var hint string
	if v.hint != "" {
		hint = hintStyle.Render(v.hint)
	}
	b.line(button, hint, mutedStyle.Render(cta.Footnote))
}

func renderRoleOption(label string, role widget.Role, kind focusKind, v pageView) string {
	radio := "( )"
	style := bodyStyle
	if v.submission.Role == role {
		radio = "(•)"
		style = selectedStyle
	}
	if v.focus.kind == kind {
		style = focusedStyle
	}
	return style.Render(radio + " " + label)
}

func renderFooter(b *pageBuilder, footer content.Footer) {
	columns := make([]string, 0, len(footer.Columns))
	for _, col := range footer.Columns {
		lines := []string{titleStyle.Render(col.Title)}
		for _, link := range col.Links {
			lines = append(lines, mutedStyle.Render(link.Label))
		}
		columns = append(columns, joinParts(lines))
	}
	b.section(renderGrid(columns, b.inner(), lipgloss.NewStyle().PaddingRight(2)))
	b.line("", mutedStyle.Render(footer.Disclaimer), "", mutedStyle.Render(footer.Copyright), "")
}

func renderLinks(links ...content.Link) string {
	var out []string
	for _, link := range links {
		if strings.TrimSpace(link.Label) == "" {
			continue
		}
		out = append(out, linkStyle.Render(link.Label)+" "+mutedStyle.Render(link.Href))
	}
	return strings.Join(out, "   ")
}

func renderGrid(cells []string, width int, style lipgloss.Style) string {
	styles := make([]lipgloss.Style, len(cells))
	for i := range styles {
		styles[i] = style
	}
	return renderStyledGrid(cells, styles, width)
}

// renderStyledGrid lays cells out in rows: two per row on wide terminals,
// one per row otherwise.
func renderStyledGrid(cells []string, styles []lipgloss.Style, width int) string {
	columns := 1
	if width >= wideLayout-4 && len(cells) > 1 {
		columns = 2
	}
	cellWidth := width/columns - 2
	var rows []string
	for start := 0; start < len(cells); start += columns {
		end := min(start+columns, len(cells))
		row := make([]string, 0, columns)
		for i := start; i < end; i++ {
			row = append(row, styles[i].Width(cellWidth).Render(cells[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
