package css_test

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"selgen/css"
)

func TestParser_SimpleSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		in   string
		want string
	}{
		{"div", "div"},
		{"*", "*"},
		{"#main", "#main"},
		{".container", ".container"},
		{"#main.container.editable", "#main.container.editable"},
		{`a[href$=".png"]:focus`, `a[href$=".png"]:focus`},
		{"input:focus:valid", "input:focus:valid"},
		{"p::first-line", "p::first-line"},
		{"li:nth-child(2n)", "li:nth-child(2n)"},
		{"div#main.box[data-id]:hover::after", "div#main.box[data-id]:hover::after"},
		{"  div.padded  ", "div.padded"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel, err := p.ParseSelector(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := sel.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParser_Combinators(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		in   string
		want string
	}{
		{"a > b", "a > b"},
		{"a>b", "a > b"},
		{"h1 + p", "h1 + p"},
		{"li ~ li", "li ~ li"},
		// descendant combinators normalize to a padded space
		{"ul li", "ul   li"},
		// combinations associate left to right
		{"a > b + c", "a > b + c"},
		{"x ~ y z", "x ~ y   z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel, err := p.ParseSelector(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := sel.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	p := css.NewParser(nil)

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"dangling combinator", "a >"},
		{"leading combinator", "> a"},
		{"consecutive combinators", "a > > b"},
		{"dot without name", "a."},
		{"colon without name", "a:"},
		{"unterminated attribute", "a[href"},
		{"triple colon", "a:::before"},
		{"stray semicolon", "a;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.ParseSelector(tt.in); !errors.Is(err, css.ErrSyntax) {
				t.Errorf("got %v, want ErrSyntax", err)
			}
		})
	}
}

func TestParser_GrammarViolations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	if _, err := p.ParseSelector(".box#main"); !errors.Is(err, css.ErrOrder) {
		t.Errorf("got %v, want ErrOrder", err)
	}
	if _, err := p.ParseSelector("#one#two"); !errors.Is(err, css.ErrDuplicate) {
		t.Errorf("got %v, want ErrDuplicate", err)
	}
}

func TestParser_Specificity(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		in   string
		want css.Specificity
	}{
		{"p", css.Specificity{0, 0, 1}},
		{"#main .box a", css.Specificity{1, 1, 1}},
		{"a:hover::before", css.Specificity{0, 1, 2}},
	}

	for _, tt := range tests {
		sel, err := p.ParseSelector(tt.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		if got := sel.Specificity(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.in, got, tt.want)
		}
	}
}
