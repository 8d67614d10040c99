package autolink

import (
	"strings"
	"testing"
)

func TestInterleave(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ab", "a<!---->b<!---->"},
		{"жы", "ж<!---->ы<!---->"},
	}
	for _, tt := range tests {
		if got := Interleave(tt.in); got != tt.want {
			t.Errorf("Interleave(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLink(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Keyword: "Dev", Href: "#dev"}, `<a href="#dev">D<!---->e<!---->v<!----></a>`},
		{Rule{Keyword: `"H"`, Href: `#say_"h"<x>`}, `<a href="#say_&quot;h&quot;&lt;x&gt;">"<!---->H<!---->"<!----></a>`},
	}
	for _, tt := range tests {
		if got := Link(tt.rule); got != tt.want {
			t.Errorf("Link(%+v) = %q, want %q", tt.rule, got, tt.want)
		}
	}
}

func TestSort(t *testing.T) {
	rules := []Rule{
		{"Device", "#a"},
		{"Update a Device", "#b"},
		{"Users", "#c"},
		{"Почта", "#d"},
		{"List Users", "#e"},
	}
	Sort(rules)

	var got []string
	for _, r := range rules {
		got = append(got, r.Keyword)
	}
	// equal lengths keep encounter order, length counts characters
	want := "Update a Device,List Users,Device,Users,Почта"
	if strings.Join(got, ",") != want {
		t.Errorf("Sort() = %v, want %s", got, want)
	}
	if !Sorted(rules) {
		t.Error("Sorted() = false after Sort()")
	}
	if Sorted([]Rule{{"a", ""}, {"abc", ""}}) {
		t.Error("Sorted() = true for ascending rules")
	}
}

func TestLinker_LongestFirst(t *testing.T) {
	l := NewLinker([]Rule{
		{"Device", "#device"},
		{"Update a Device", "#update_a_device"},
	})

	got := l.Apply("Call Update a Device for each Device.")
	want := "Call " + Link(Rule{"Update a Device", "#update_a_device"}) +
		" for each " + Link(Rule{"Device", "#device"}) + "."
	if got != want {
		t.Errorf("Apply() =\n%s\nwant\n%s", got, want)
	}
	if strings.Count(got, "<a href=") != 2 {
		t.Errorf("expected exactly two links, got %q", got)
	}
}

func TestLinker_LinkedTextNotRelinked(t *testing.T) {
	// both shorter keywords are inside "List Users"
	l := NewLinker([]Rule{{"List", "#list"}, {"Users", "#users"}, {"List Users", "#list_users"}})

	got := l.Apply("List Users")
	if got != Link(Rule{"List Users", "#list_users"}) {
		t.Errorf("Apply() = %q", got)
	}
}

func TestLinker_EmptyAndNil(t *testing.T) {
	l := NewLinker([]Rule{{"", "#empty"}, {"x", "#x"}})
	if len(l.Rules()) != 1 {
		t.Errorf("Rules() = %v, empty keyword should be dropped", l.Rules())
	}
	if got := l.Apply("axb"); got != "a"+Link(Rule{"x", "#x"})+"b" {
		t.Errorf("Apply() = %q", got)
	}
	if got := l.Apply(""); got != "" {
		t.Errorf("Apply(\"\") = %q", got)
	}

	var nl *Linker
	if got := nl.Apply("text"); got != "text" {
		t.Errorf("nil Apply() = %q", got)
	}
	if nl.Rules() != nil {
		t.Error("nil Rules() should be nil")
	}

	var zero Linker
	if got := zero.Apply("text"); got != "text" {
		t.Errorf("zero Apply() = %q", got)
	}
}

func TestNewLinker_CopiesRules(t *testing.T) {
	rules := []Rule{{"a", "#a"}, {"bb", "#b"}}
	l := NewLinker(rules)
	rules[0].Keyword = "zzz"

	if l.Rules()[1].Keyword != "a" {
		t.Errorf("linker rules changed with caller slice: %v", l.Rules())
	}
	if rules[1].Keyword != "bb" {
		t.Error("caller slice must not be reordered")
	}
}

func TestApply_MatchesLinker(t *testing.T) {
	rules := []Rule{{"Update a Device", "#u"}, {"Device", "#d"}, {"", "#e"}}
	text := "Update a Device, then Device"
	if got, want := Apply(text, rules), NewLinker(rules).Apply(text); got != want {
		t.Errorf("Apply() = %q, Linker.Apply() = %q", got, want)
	}
}

// Replacement is textual, keywords may hit character references and
// attribute values. These cases document current behavior.
func TestLinker_KnownLimitations(t *testing.T) {
	t.Run("character reference", func(t *testing.T) {
		got := NewLinker([]Rule{{"gt", "#gt"}}).Apply("a &gt; b")
		if strings.Contains(got, "&gt;") {
			t.Errorf("expected reference to be broken, got %q", got)
		}
	})

	t.Run("keyword inside generated href", func(t *testing.T) {
		got := NewLinker([]Rule{{"ab", "#xx"}, {"xx", "#y"}}).Apply("ab")
		if !strings.Contains(got, `href="#`+Link(Rule{"xx", "#y"})) {
			t.Errorf("expected shorter keyword to match inside href, got %q", got)
		}
	})
}
