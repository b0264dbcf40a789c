package css_test

import (
	"errors"
	"strings"
	"testing"

	"selgen/css"
)

func TestBuilder_SingleParts(t *testing.T) {
	tests := []struct {
		name string
		sel  *css.Selector
		want string
	}{
		{"element", css.Element("div"), "div"},
		{"id", css.ID("nav-bar"), "#nav-bar"},
		{"class", css.Class("warning"), ".warning"},
		{"attribute", css.Attr(`href$=".png"`), `[href$=".png"]`},
		{"pseudo-class", css.PseudoClass("hover"), ":hover"},
		{"pseudo-element", css.PseudoElement("before"), "::before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Chains(t *testing.T) {
	tests := []struct {
		name string
		sel  *css.Selector
		want string
	}{
		{
			"id with classes",
			css.ID("main").Class("container").Class("editable"),
			"#main.container.editable",
		},
		{
			"element with attribute and pseudo-class",
			css.Element("a").Attr(`href$=".png"`).PseudoClass("focus"),
			`a[href$=".png"]:focus`,
		},
		{
			"full chain",
			css.Element("div").ID("main").Class("container").Attr("data-id").PseudoClass("hover").PseudoElement("first-line"),
			"div#main.container[data-id]:hover::first-line",
		},
		{
			"repeated pseudo-classes",
			css.Element("input").PseudoClass("focus").PseudoClass("valid"),
			"input:focus:valid",
		},
		{
			"element chain continues",
			css.Element("table").Class("striped"),
			"table.striped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sel.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tt.sel.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Duplicates(t *testing.T) {
	tests := []struct {
		name string
		sel  *css.Selector
	}{
		{"element twice", css.Element("div").Element("span")},
		{"id twice", css.ID("one").ID("two")},
		{"attribute twice", css.Attr("a").Attr("b")},
		{"pseudo-element twice", css.PseudoElement("before").PseudoElement("after")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sel.Build(); !errors.Is(err, css.ErrDuplicate) {
				t.Errorf("got %v, want ErrDuplicate", err)
			}
		})
	}
}

func TestBuilder_Ordering(t *testing.T) {
	tests := []struct {
		name string
		sel  *css.Selector
	}{
		{"element after id", css.ID("main").Element("div")},
		{"id after class", css.Class("box").ID("main")},
		{"class after attribute", css.Attr("checked").Class("box")},
		{"attribute after pseudo-class", css.PseudoClass("hover").Attr("checked")},
		{"pseudo-class after pseudo-element", css.PseudoElement("after").PseudoClass("hover")},
		{"element after pseudo-class", css.Element("p").PseudoClass("empty").Element("div")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sel.Build(); !errors.Is(err, css.ErrOrder) {
				t.Errorf("got %v, want ErrOrder", err)
			}
		})
	}
}

func TestBuilder_ErrorIsSticky(t *testing.T) {
	sel := css.Class("box").ID("main") // ordering violation latches here
	sel = sel.Class("late").PseudoClass("hover")

	if !errors.Is(sel.Err(), css.ErrOrder) {
		t.Fatalf("got %v, want ErrOrder", sel.Err())
	}
	// parts added after the violation are dropped
	if got := sel.String(); got != ".box" {
		t.Errorf("got %q, want %q", got, ".box")
	}
}

func TestCombine_Simple(t *testing.T) {
	a := css.Element("p").Class("lead")
	b := css.ID("footer")

	got, err := css.Combine(a, "+", b).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := a.String() + " + " + b.String()
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCombine_Nested(t *testing.T) {
	x := css.Element("ul")
	y := css.Element("li")
	z := css.Element("a")

	// descendant combinator inside another combine keeps its padding spaces
	got := css.Combine(x, "~", css.Combine(y, " ", z)).String()
	want := x.String() + " ~ " + y.String() + "   " + z.String()
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCombine_ArbitraryCombinator(t *testing.T) {
	// combinators are rendered verbatim, legality is the caller's business
	got := css.Combine(css.Element("a"), ">>>", css.Element("b")).String()
	if got != "a >>> b" {
		t.Errorf("got %q, want %q", got, "a >>> b")
	}
}

func TestCombine_PropagatesChildErrors(t *testing.T) {
	bad := css.ID("x").ID("y")
	c := css.Combine(css.Element("a"), ">", bad)

	if _, err := c.Build(); !errors.Is(err, css.ErrDuplicate) {
		t.Errorf("got %v, want ErrDuplicate", err)
	}
}

func TestSelector_WriteTo(t *testing.T) {
	sel := css.Element("a").Class("external")

	var sb strings.Builder
	n, err := sel.WriteTo(&sb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "a.external"; sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
	if n != int64(len(sb.String())) {
		t.Errorf("reported %d bytes, wrote %d", n, len(sb.String()))
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		name string
		sel  css.Renderable
		want css.Specificity
	}{
		{"element", css.Element("p"), css.Specificity{0, 0, 1}},
		{"id and classes", css.ID("main").Class("a").Class("b"), css.Specificity{1, 2, 0}},
		{"attribute and pseudos", css.Element("a").Attr("href").PseudoClass("hover").PseudoElement("before"), css.Specificity{0, 2, 2}},
		{"combined sums children", css.Combine(css.ID("x"), ">", css.Element("li").Class("y")), css.Specificity{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Specificity(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpecificity_LessAndAdd(t *testing.T) {
	lo := css.Specificity{0, 2, 3}
	hi := css.Specificity{1, 0, 0}

	if !lo.Less(hi) {
		t.Error("expected {0,2,3} < {1,0,0}")
	}
	if hi.Less(lo) {
		t.Error("expected {1,0,0} not < {0,2,3}")
	}
	if lo.Less(lo) {
		t.Error("Less must be strict")
	}
	if got, want := lo.Add(hi), (css.Specificity{1, 2, 3}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chapter Title", "chapter-title"},
		{"Hello, World!", "hello-world"},
		{"already-fine", "already-fine"},
	}

	for _, tt := range tests {
		if got := css.ClassName(tt.in); got != tt.want {
			t.Errorf("ClassName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategory_String(t *testing.T) {
	order := []css.Category{
		css.CategoryElement, css.CategoryID, css.CategoryClass,
		css.CategoryAttribute, css.CategoryPseudoClass, css.CategoryPseudoElement,
	}
	names := []string{"element", "id", "class", "attribute", "pseudo-class", "pseudo-element"}

	for i, c := range order {
		if c.String() != names[i] {
			t.Errorf("category %d: got %q, want %q", i, c.String(), names[i])
		}
	}
}
