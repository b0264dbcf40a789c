// Package rules compiles YAML selector rule documents into rendered CSS
// selector strings.
package rules

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"selgen/css"
)

// Rule describes one selector to build. Either the part fields or the
// combination fields are used, not both.
type Rule struct {
	Name string `yaml:"name"`

	// simple selector parts, applied in category order
	Element       string   `yaml:"element,omitempty"`
	ID            string   `yaml:"id,omitempty"`
	Classes       []string `yaml:"classes,omitempty"`
	Attribute     string   `yaml:"attribute,omitempty"`
	PseudoClasses []string `yaml:"pseudo_classes,omitempty"`
	PseudoElement string   `yaml:"pseudo_element,omitempty"`

	// combination of two previously defined rules
	Left       string `yaml:"left,omitempty"`
	Combinator string `yaml:"combinator,omitempty"`
	Right      string `yaml:"right,omitempty"`
}

// IsCombination reports whether the rule joins two other rules.
func (r *Rule) IsCombination() bool {
	return len(r.Left) > 0 || len(r.Right) > 0
}

// Document is a list of selector rules. Combination rules may reference any
// rule defined before them by name.
type Document struct {
	Rules []Rule `yaml:"rules"`
}

// Load decodes a rule document, rejecting unknown fields.
func Load(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode rules document: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules document is empty")
	}
	return &doc, nil
}

// Compiled is a named selector produced from a rule document.
type Compiled struct {
	Name     string
	Selector css.Renderable
}

// Render returns the selector text for the compiled rule.
func (c Compiled) Render() string {
	return c.Selector.String()
}

// Compiler builds selector values out of rule documents.
type Compiler struct {
	log *zap.Logger
}

// NewCompiler creates a new rule compiler.
func NewCompiler(log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{log: log.Named("rule-compiler")}
}

// Compile turns every rule of the document into a selector value. Rules are
// processed independently - all violations are reported together, not just
// the first one.
func (c *Compiler) Compile(doc *Document) ([]Compiled, error) {
	var (
		out  []Compiled
		errs error
	)

	byName := make(map[string]css.Renderable, len(doc.Rules))

	for i, r := range doc.Rules {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i+1)
		}
		if _, exists := byName[name]; exists {
			errs = multierr.Append(errs, fmt.Errorf("rule %q: duplicate rule name", name))
			continue
		}

		sel, err := c.compileRule(&r, byName)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %q: %w", name, err))
			continue
		}

		c.log.Debug("Compiled rule", zap.String("name", name), zap.String("selector", sel.String()))
		byName[name] = sel
		out = append(out, Compiled{Name: name, Selector: sel})
	}

	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (c *Compiler) compileRule(r *Rule, byName map[string]css.Renderable) (css.Renderable, error) {
	if r.IsCombination() {
		if r.Element != "" || r.ID != "" || len(r.Classes) > 0 || r.Attribute != "" ||
			len(r.PseudoClasses) > 0 || r.PseudoElement != "" {
			return nil, fmt.Errorf("combination rule cannot carry selector parts")
		}
		left, ok := byName[r.Left]
		if !ok {
			return nil, fmt.Errorf("unknown left operand %q", r.Left)
		}
		right, ok := byName[r.Right]
		if !ok {
			return nil, fmt.Errorf("unknown right operand %q", r.Right)
		}
		comb := r.Combinator
		if comb == "" {
			comb = " "
		}
		return css.Combine(left, comb, right), nil
	}

	sel := new(css.Selector)
	if r.Element != "" {
		sel = sel.Element(r.Element)
	}
	if r.ID != "" {
		sel = sel.ID(r.ID)
	}
	for _, name := range r.Classes {
		sel = sel.Class(name)
	}
	if r.Attribute != "" {
		sel = sel.Attr(r.Attribute)
	}
	for _, name := range r.PseudoClasses {
		sel = sel.PseudoClass(name)
	}
	if r.PseudoElement != "" {
		sel = sel.PseudoElement(r.PseudoElement)
	}
	if err := sel.Err(); err != nil {
		return nil, err
	}
	if sel.String() == "" {
		return nil, fmt.Errorf("rule has no selector parts")
	}
	return sel, nil
}

// SortByName orders compiled rules by name in natural order, so "rule-10"
// sorts after "rule-2".
func SortByName(list []Compiled) {
	sort.SliceStable(list, func(i, j int) bool {
		return natural.Less(list[i].Name, list[j].Name)
	})
}

// RenderText renders compiled rules one per line as "name: selector",
// optionally with specificity appended.
func RenderText(list []Compiled, showSpecificity bool) string {
	var sb strings.Builder
	for _, c := range list {
		sb.WriteString(c.Name)
		sb.WriteString(": ")
		sb.WriteString(c.Render())
		if showSpecificity {
			sp := c.Selector.Specificity()
			fmt.Fprintf(&sb, "  /* specificity %d,%d,%d */", sp[0], sp[1], sp[2])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
