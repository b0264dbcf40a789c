package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// Category identifies the kind of a selector part. Parts of a simple
// selector must be added in Category order.
type Category int

const (
	CategoryElement Category = iota
	CategoryID
	CategoryClass
	CategoryAttribute
	CategoryPseudoClass
	CategoryPseudoElement
)

// String returns the human readable name of the category.
func (c Category) String() string {
	switch c {
	case CategoryElement:
		return "element"
	case CategoryID:
		return "id"
	case CategoryClass:
		return "class"
	case CategoryAttribute:
		return "attribute"
	case CategoryPseudoClass:
		return "pseudo-class"
	case CategoryPseudoElement:
		return "pseudo-element"
	default:
		return "unknown"
	}
}

var (
	// ErrDuplicate is reported when a part which may appear only once is added twice.
	ErrDuplicate = errors.New("Element, id and pseudo-element should not occur more than one time inside the selector")
	// ErrOrder is reported when parts are added out of category order.
	ErrOrder = errors.New("Selector parts should be arranged in the following order: element, id, class, attribute, pseudo-class, pseudo-element")
)

// Renderable is anything that can be rendered to its CSS selector text.
// Both simple and combined selectors satisfy it.
type Renderable interface {
	io.WriterTo
	fmt.Stringer

	// Err reports the first construction error, if any. A selector with a
	// non-nil Err renders whatever was accumulated before the violation and
	// should be discarded by the caller.
	Err() error

	// Specificity computes selector specificity per the W3C convention.
	Specificity() Specificity
}

// Selector is a simple selector accumulating parts across a chain of calls.
// The zero value is an empty selector ready for chaining, the package level
// constructors are shorthands starting a chain from its first part.
type Selector struct {
	element       string
	id            string
	classes       []string
	attribute     string
	pseudoClasses []string
	pseudoElement string

	hasElement       bool
	hasID            bool
	hasAttribute     bool
	hasPseudoElement bool

	last Category // highest category seen so far
	err  error    // sticky, set by the first violation
}

// Err reports the first ordering or duplication violation on the chain.
func (s *Selector) Err() error {
	return s.err
}

// advance enforces the category ordering invariant and records the new
// high-water mark. Repeating the current category is allowed - duplication
// limits are enforced separately per part kind.
func (s *Selector) advance(c Category) bool {
	if s.err != nil {
		return false
	}
	if c < s.last {
		s.err = ErrOrder
		return false
	}
	s.last = c
	return true
}

// WriteTo writes the selector text to w, implementing io.WriterTo.
// Categories are emitted in their fixed order.
func (s *Selector) WriteTo(w io.Writer) (int64, error) {
	var total int64

	write := func(format string, args ...any) error {
		n, err := fmt.Fprintf(w, format, args...)
		total += int64(n)
		return err
	}

	if s.hasElement {
		if err := write("%s", s.element); err != nil {
			return total, err
		}
	}
	if s.hasID {
		if err := write("#%s", s.id); err != nil {
			return total, err
		}
	}
	for _, name := range s.classes {
		if err := write(".%s", name); err != nil {
			return total, err
		}
	}
	if s.hasAttribute {
		if err := write("[%s]", s.attribute); err != nil {
			return total, err
		}
	}
	for _, name := range s.pseudoClasses {
		if err := write(":%s", name); err != nil {
			return total, err
		}
	}
	if s.hasPseudoElement {
		if err := write("::%s", s.pseudoElement); err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the selector text.
func (s *Selector) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// Build returns the selector text or the first construction error.
func (s *Selector) Build() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.String(), nil
}

// Specificity computes the specificity of the simple selector.
func (s *Selector) Specificity() Specificity {
	var sp Specificity
	if s.hasID {
		sp[0]++
	}
	sp[1] += len(s.classes) + len(s.pseudoClasses)
	if s.hasAttribute {
		sp[1]++
	}
	if s.hasElement {
		sp[2]++
	}
	if s.hasPseudoElement {
		sp[2]++
	}
	return sp
}

// Combined is two selectors joined by a combinator symbol. The combinator is
// rendered verbatim - no validation of its legality is attempted.
type Combined struct {
	left       Renderable
	combinator string
	right      Renderable
}

// Combine joins two already built selectors with a combinator symbol.
// Children are embedded verbatim and must not be mutated afterwards.
func Combine(left Renderable, combinator string, right Renderable) *Combined {
	return &Combined{left: left, combinator: combinator, right: right}
}

// Err reports accumulated construction errors of both children.
func (c *Combined) Err() error {
	return multierr.Append(c.left.Err(), c.right.Err())
}

// WriteTo writes the combined selector text to w, implementing io.WriterTo.
func (c *Combined) WriteTo(w io.Writer) (int64, error) {
	var total int64

	n, err := c.left.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}
	m, err := fmt.Fprintf(w, " %s ", c.combinator)
	total += int64(m)
	if err != nil {
		return total, err
	}
	n, err = c.right.WriteTo(w)
	total += n
	return total, err
}

// String returns the combined selector text.
func (c *Combined) String() string {
	var sb strings.Builder
	c.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// Build returns the combined selector text or the first construction error
// latched in either child.
func (c *Combined) Build() (string, error) {
	if err := c.Err(); err != nil {
		return "", err
	}
	return c.String(), nil
}

// Specificity sums the specificities of both children.
func (c *Combined) Specificity() Specificity {
	return c.left.Specificity().Add(c.right.Specificity())
}

// Specificity is the CSS specificity with the convention [A,B,C]:
// A counts ids, B counts classes, attributes and pseudo-classes, C counts
// elements and pseudo-elements.
type Specificity [3]int

// Less reports whether s sorts strictly before other.
func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] < other[i] {
			return true
		}
		if s[i] > other[i] {
			return false
		}
	}
	return false
}

// Add returns the component-wise sum of the two specificities.
func (s Specificity) Add(other Specificity) Specificity {
	for i, sp := range other {
		s[i] += sp
	}
	return s
}
