package css

import (
	"github.com/gosimple/slug"
)

// Package level constructors start a new simple selector chain. Every chain
// method returns the receiver, so parts can be stacked:
//
//	css.ID("main").Class("container").Class("editable").String()
//
// Violations of the part grammar do not panic - they latch into the selector
// and surface through Err or Build. A selector with a latched error must be
// discarded, subsequent calls on it are no-ops.

// Element starts a selector chain with an element name.
func Element(name string) *Selector {
	return new(Selector).Element(name)
}

// ID starts a selector chain with an id name.
func ID(name string) *Selector {
	return new(Selector).ID(name)
}

// Class starts a selector chain with a class name.
func Class(name string) *Selector {
	return new(Selector).Class(name)
}

// Attr starts a selector chain with a bracketed attribute expression. The
// expression is rendered verbatim between the brackets, e.g. `href$=".png"`.
func Attr(expr string) *Selector {
	return new(Selector).Attr(expr)
}

// PseudoClass starts a selector chain with a pseudo-class name.
func PseudoClass(name string) *Selector {
	return new(Selector).PseudoClass(name)
}

// PseudoElement starts a selector chain with a pseudo-element name.
func PseudoElement(name string) *Selector {
	return new(Selector).PseudoElement(name)
}

// Element sets the element name. May be called at most once per chain and
// only before parts of any later category.
func (s *Selector) Element(name string) *Selector {
	if !s.advance(CategoryElement) {
		return s
	}
	if s.hasElement {
		s.err = ErrDuplicate
		return s
	}
	s.element = name
	s.hasElement = true
	return s
}

// ID sets the id name. May be called at most once per chain.
func (s *Selector) ID(name string) *Selector {
	if !s.advance(CategoryID) {
		return s
	}
	if s.hasID {
		s.err = ErrDuplicate
		return s
	}
	s.id = name
	s.hasID = true
	return s
}

// Class appends a class name. Any number of classes is allowed.
func (s *Selector) Class(name string) *Selector {
	if !s.advance(CategoryClass) {
		return s
	}
	s.classes = append(s.classes, name)
	return s
}

// Attr sets the attribute expression. May be called at most once per chain.
func (s *Selector) Attr(expr string) *Selector {
	if !s.advance(CategoryAttribute) {
		return s
	}
	if s.hasAttribute {
		s.err = ErrDuplicate
		return s
	}
	s.attribute = expr
	s.hasAttribute = true
	return s
}

// PseudoClass appends a pseudo-class name. Any number is allowed.
func (s *Selector) PseudoClass(name string) *Selector {
	if !s.advance(CategoryPseudoClass) {
		return s
	}
	s.pseudoClasses = append(s.pseudoClasses, name)
	return s
}

// PseudoElement sets the pseudo-element name. May be called at most once per
// chain.
func (s *Selector) PseudoElement(name string) *Selector {
	if !s.advance(CategoryPseudoElement) {
		return s
	}
	if s.hasPseudoElement {
		s.err = ErrDuplicate
		return s
	}
	s.pseudoElement = name
	s.hasPseudoElement = true
	return s
}

// ClassName converts arbitrary text into an identifier usable as a class
// name, e.g. "Chapter Title!" becomes "chapter-title".
func ClassName(text string) string {
	return slug.Make(text)
}
