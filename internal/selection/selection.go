package selection

import (
	"verbena-be/internal/catalog"
)

// Selection is the shopper's in-progress choice of option values for
// the product currently being viewed. It may be partial. Not persisted;
// rebuilt per product view.
type Selection map[string]string

// With returns a copy of the selection with one option set. The
// receiver is never mutated, so hypothetical selections can be built
// freely while computing availability.
func (s Selection) With(option, value string) Selection {
	next := make(Selection, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[option] = value
	return next
}

// Value returns the chosen value for an option, if any.
func (s Selection) Value(option string) (string, bool) {
	v, ok := s[option]
	return v, ok
}

// IsComplete reports whether every option defined on the product has a
// chosen value. A product without options is trivially complete.
func (s Selection) IsComplete(p *catalog.Product) bool {
	for _, opt := range p.Options {
		if _, ok := s[opt.Name]; !ok {
			return false
		}
	}
	return true
}
