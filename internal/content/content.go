// Package content describes the static copy of the landing page. A Page is
// decoded once from YAML and treated as read-only by everything else.
package content

import "strings"

// Link is an in-page or external reference. In-page links start with "#".
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Anchor returns the target anchor of an in-page link ("" for "#" or for
// links that leave the page).
func (l Link) Anchor() string {
	href := strings.TrimSpace(l.Href)
	if !strings.HasPrefix(href, "#") {
		return ""
	}
	return strings.TrimPrefix(href, "#")
}

// InPage reports whether the link points into this page.
func (l Link) InPage() bool {
	return strings.HasPrefix(strings.TrimSpace(l.Href), "#")
}

// Meta is the document metadata.
type Meta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

// Brand is the logo mark and product name.
type Brand struct {
	Name    string `yaml:"name"`
	Mark    string `yaml:"mark"`
	Tagline string `yaml:"tagline"`
}

// Nav is the header navigation.
type Nav struct {
	Links []Link `yaml:"links"`
	CTA   Link   `yaml:"cta"`
}

// Hero is the first screen.
type Hero struct {
	Anchor    string   `yaml:"anchor"`
	Headline  string   `yaml:"headline"`
	Highlight string   `yaml:"highlight"`
	Body      string   `yaml:"body"`
	Primary   Link     `yaml:"primary"`
	Secondary Link     `yaml:"secondary"`
	Note      string   `yaml:"note"`
	Badges    []string `yaml:"badges"`
}

// Card is a title plus a short description.
type Card struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Problem lists the pains the product addresses.
type Problem struct {
	Anchor  string   `yaml:"anchor"`
	Title   string   `yaml:"title"`
	Intro   string   `yaml:"intro"`
	Pains   []string `yaml:"pains"`
	Warning string   `yaml:"warning"`
}

// Solution pitches the product.
type Solution struct {
	Anchor  string `yaml:"anchor"`
	Eyebrow string `yaml:"eyebrow"`
	Title   string `yaml:"title"`
	Intro   string `yaml:"intro"`
	Items   []Card `yaml:"items"`
	Link    Link   `yaml:"link"`
}

// Step is one numbered step of the walkthrough.
type Step struct {
	Number      string `yaml:"number"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// HowItWorks is the step-by-step walkthrough.
type HowItWorks struct {
	Anchor  string `yaml:"anchor"`
	Eyebrow string `yaml:"eyebrow"`
	Title   string `yaml:"title"`
	Steps   []Step `yaml:"steps"`
}

// Audience is one "who it's for" column.
type Audience struct {
	Title    string   `yaml:"title"`
	Badge    string   `yaml:"badge"`
	Benefits []string `yaml:"benefits"`
}

// Audiences groups the target audiences.
type Audiences struct {
	Anchor string     `yaml:"anchor"`
	Title  string     `yaml:"title"`
	Groups []Audience `yaml:"groups"`
}

// Features is the feature grid.
type Features struct {
	Anchor  string `yaml:"anchor"`
	Eyebrow string `yaml:"eyebrow"`
	Title   string `yaml:"title"`
	Items   []Card `yaml:"items"`
}

// Testimonial is a quote from an early tester.
type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
	Role   string `yaml:"role"`
}

// Testimonials is the quotes section.
type Testimonials struct {
	Anchor string        `yaml:"anchor"`
	Title  string        `yaml:"title"`
	Quotes []Testimonial `yaml:"quotes"`
}

// Plan is one pricing tier.
type Plan struct {
	Name        string   `yaml:"name"`
	Subtitle    string   `yaml:"subtitle"`
	Price       string   `yaml:"price"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	CTA         Link     `yaml:"cta"`
	Highlighted bool     `yaml:"highlighted"`
	Badge       string   `yaml:"badge"`
}

// Pricing is the plans section.
type Pricing struct {
	Anchor   string `yaml:"anchor"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Plans    []Plan `yaml:"plans"`
}

// Entry is one FAQ question and its answer.
type Entry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// FAQ is the accordion section.
type FAQ struct {
	Anchor  string  `yaml:"anchor"`
	Title   string  `yaml:"title"`
	Entries []Entry `yaml:"entries"`
}

// CTA is the early-access form. RoleAnchor marks the buyer/agent selector,
// which agents are sent to directly.
type CTA struct {
	Anchor           string `yaml:"anchor"`
	RoleAnchor       string `yaml:"role_anchor"`
	Title            string `yaml:"title"`
	Body             string `yaml:"body"`
	EmailLabel       string `yaml:"email_label"`
	EmailPlaceholder string `yaml:"email_placeholder"`
	BuyerLabel       string `yaml:"buyer_label"`
	AgentLabel       string `yaml:"agent_label"`
	SubmitLabel      string `yaml:"submit_label"`
	SubmittedLabel   string `yaml:"submitted_label"`
	InvalidEmailHint string `yaml:"invalid_email_hint"`
	Footnote         string `yaml:"footnote"`
}

// Column is a titled group of footer links.
type Column struct {
	Title string `yaml:"title"`
	Links []Link `yaml:"links"`
}

// Footer closes the page.
type Footer struct {
	Copyright  string   `yaml:"copyright"`
	Columns    []Column `yaml:"columns"`
	Disclaimer string   `yaml:"disclaimer"`
}

// Page is the whole landing page, top to bottom.
type Page struct {
	Meta         Meta         `yaml:"meta"`
	Brand        Brand        `yaml:"brand"`
	Nav          Nav          `yaml:"nav"`
	Hero         Hero         `yaml:"hero"`
	Problem      Problem      `yaml:"problem"`
	Solution     Solution     `yaml:"solution"`
	HowItWorks   HowItWorks   `yaml:"how_it_works"`
	Audiences    Audiences    `yaml:"audiences"`
	Features     Features     `yaml:"features"`
	Testimonials Testimonials `yaml:"testimonials"`
	Pricing      Pricing      `yaml:"pricing"`
	FAQ          FAQ          `yaml:"faq"`
	CTA          CTA          `yaml:"cta"`
	Footer       Footer       `yaml:"footer"`
}

// NavLinks returns the header links followed by the header CTA, the order the
// navigation panel shows them in.
func (p *Page) NavLinks() []Link {
	links := make([]Link, 0, len(p.Nav.Links)+1)
	links = append(links, p.Nav.Links...)
	if strings.TrimSpace(p.Nav.CTA.Href) != "" {
		links = append(links, p.Nav.CTA)
	}
	return links
}

// Links returns every link on the page with a short description of where it
// appears.
func (p *Page) Links() []PlacedLink {
	var out []PlacedLink
	add := func(where string, links ...Link) {
		for _, link := range links {
			out = append(out, PlacedLink{Where: where, Link: link})
		}
	}
	add("nav", p.Nav.Links...)
	add("nav cta", p.Nav.CTA)
	add("hero", p.Hero.Primary, p.Hero.Secondary)
	add("solution", p.Solution.Link)
	for _, plan := range p.Pricing.Plans {
		add("pricing "+plan.Name, plan.CTA)
	}
	for _, col := range p.Footer.Columns {
		add("footer "+col.Title, col.Links...)
	}
	filtered := out[:0]
	for _, pl := range out {
		if strings.TrimSpace(pl.Link.Href) == "" && strings.TrimSpace(pl.Link.Label) == "" {
			continue
		}
		filtered = append(filtered, pl)
	}
	return filtered
}

// PlacedLink is a link together with its location on the page.
type PlacedLink struct {
	Where string
	Link  Link
}

// Anchors returns the anchors exposed by the page mapped to the section that
// owns them, in page order.
func (p *Page) Anchors() []SectionAnchor {
	candidates := []SectionAnchor{
		{Section: "hero", Anchor: p.Hero.Anchor},
		{Section: "problem", Anchor: p.Problem.Anchor},
		{Section: "solution", Anchor: p.Solution.Anchor},
		{Section: "how it works", Anchor: p.HowItWorks.Anchor},
		{Section: "who it's for", Anchor: p.Audiences.Anchor},
		{Section: "features", Anchor: p.Features.Anchor},
		{Section: "testimonials", Anchor: p.Testimonials.Anchor},
		{Section: "pricing", Anchor: p.Pricing.Anchor},
		{Section: "faq", Anchor: p.FAQ.Anchor},
		{Section: "early access", Anchor: p.CTA.Anchor},
		{Section: "early access roles", Anchor: p.CTA.RoleAnchor},
	}
	out := make([]SectionAnchor, 0, len(candidates))
	for _, c := range candidates {
		c.Anchor = strings.TrimSpace(c.Anchor)
		if c.Anchor != "" {
			out = append(out, c)
		}
	}
	return out
}

// SectionAnchor ties an anchor id to a section.
type SectionAnchor struct {
	Section string
	Anchor  string
}
