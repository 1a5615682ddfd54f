package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/widgetkit/pkg/element"
)

// Finder locates elements in a window.
type Finder interface {
	// Evaluate returns the matching elements in window order.
	Evaluate(elems []element.Element) []element.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []element.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() element.Element {
	if len(r.elements) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("FinderResult.First: no elements found for %s", desc))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match or nil.
func (r FinderResult) FirstOrNil() element.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) element.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("FinderResult.At: index %d out of range [0, %d)", index, len(r.elements)))
	}
	return r.elements[index]
}

// All returns every match.
func (r FinderResult) All() []element.Element { return r.elements }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.elements) }

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool { return len(r.elements) > 0 }

// --- Finder implementations ---

type predicateFinder struct {
	fn   func(element.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(elems []element.Element) []element.Element {
	var out []element.Element
	for _, e := range elems {
		if f.fn(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *predicateFinder) Description() string { return f.desc }

// ByClass finds elements constructed as the class named name or a
// descendant of it.
func ByClass(name string) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("ByClass(%q)", name),
		fn: func(e element.Element) bool {
			for c := e.Class(); c != nil; c = c.Parent() {
				if c.Name() == name {
					return true
				}
			}
			return false
		},
	}
}

// texter is implemented by widgets that show a text.
type texter interface {
	Text() string
}

// ByText finds elements whose text equals text exactly.
func ByText(text string) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("ByText(%q)", text),
		fn: func(e element.Element) bool {
			t, ok := e.(texter)
			return ok && t.Text() == text
		},
	}
}

// ByTextContaining finds elements whose text contains substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
		fn: func(e element.Element) bool {
			t, ok := e.(texter)
			return ok && strings.Contains(t.Text(), substring)
		},
	}
}

// ByPredicate finds elements matching fn.
func ByPredicate(fn func(element.Element) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate"}
}
