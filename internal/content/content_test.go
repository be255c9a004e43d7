package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPageDecodes(t *testing.T) {
	page, err := Default()
	if err != nil {
		t.Fatalf("default page: %v", err)
	}
	if page.Brand.Name != "BoardPackNYC" {
		t.Fatalf("brand = %q", page.Brand.Name)
	}
	if got := len(page.FAQ.Entries); got != 6 {
		t.Fatalf("faq entries = %d, want 6", got)
	}
	if got := len(page.Pricing.Plans); got != 2 {
		t.Fatalf("plans = %d, want 2", got)
	}
	if !page.Pricing.Plans[1].Highlighted {
		t.Fatalf("agent plan should be highlighted")
	}
	if page.CTA.SubmitLabel == "" || page.CTA.SubmittedLabel == "" {
		t.Fatalf("cta labels missing")
	}
}

func TestDefaultPageKeepsAnchorContract(t *testing.T) {
	page, err := Default()
	if err != nil {
		t.Fatalf("default page: %v", err)
	}
	if err := page.Validate(); err != nil {
		t.Fatalf("bundled page has broken links: %v", err)
	}
	exposed := map[string]bool{}
	for _, a := range page.Anchors() {
		exposed[a.Anchor] = true
	}
	for _, want := range []string{"early-access", "agent-waitlist", "features", "pricing", "demo", "faq"} {
		if !exposed[want] {
			t.Errorf("anchor #%s missing", want)
		}
	}
}

func TestNavLinksEndWithCTA(t *testing.T) {
	page, err := Default()
	if err != nil {
		t.Fatalf("default page: %v", err)
	}
	links := page.NavLinks()
	if len(links) != 5 {
		t.Fatalf("nav links = %d, want 5", len(links))
	}
	if last := links[len(links)-1]; last.Anchor() != "early-access" {
		t.Fatalf("last nav link = %+v", last)
	}
}

func TestValidateReportsBrokenAnchorWithSuggestion(t *testing.T) {
	page := &Page{
		Nav: Nav{Links: []Link{{Label: "FAQ", Href: "#fqa"}}},
		FAQ: FAQ{Anchor: "faq"},
	}
	err := page.Validate()
	if !errors.Is(err, ErrBrokenAnchor) {
		t.Fatalf("expected broken anchor, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean #faq?") {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestValidateReportsDuplicateAnchor(t *testing.T) {
	page := &Page{
		Features: Features{Anchor: "features"},
		Pricing:  Pricing{Anchor: "features"},
	}
	if err := page.Validate(); !errors.Is(err, ErrDuplicateAnchor) {
		t.Fatalf("expected duplicate anchor, got %v", err)
	}
}

func TestValidateAllowsTopAndExternalLinks(t *testing.T) {
	page := &Page{
		Footer: Footer{Columns: []Column{{
			Title: "Company",
			Links: []Link{{Label: "About", Href: "#"}, {Label: "Blog", Href: "https://example.com/blog"}},
		}}},
	}
	if err := page.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmptyPageIsTolerated(t *testing.T) {
	page, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if err := page.Validate(); err != nil {
		t.Fatalf("empty page should validate: %v", err)
	}
	if len(page.NavLinks()) != 0 || len(page.Anchors()) != 0 {
		t.Fatalf("empty page should expose nothing")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("faqs:\n  title: x\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	doc := strings.TrimSpace(`
brand:
  name: Test Co
faq:
  anchor: faq
  entries:
    - question: Q1
      answer: A1
`)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	page, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if page.Brand.Name != "Test Co" || len(page.FAQ.Entries) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"early-access", "agent-waitlist", "pricing"}
	if got := Suggest("pricng", candidates); got != "pricing" {
		t.Fatalf("Suggest = %q, want pricing", got)
	}
	if got := Suggest("testimonials", candidates); got != "" {
		t.Fatalf("Suggest = %q, want none", got)
	}
}
