package sema

import "ghostc/internal/types"

type binding struct {
	typ     types.Type
	isParam bool
}

// scopeStack holds one scope per function being checked. Lookups only see
// the innermost scope: the language has no nested blocks inside functions.
type scopeStack struct {
	scopes []map[string]binding
}

func (s *scopeStack) push() {
	s.scopes = append(s.scopes, make(map[string]binding))
}

func (s *scopeStack) pop() {
	if len(s.scopes) > 0 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *scopeStack) declare(name string, b binding) {
	if len(s.scopes) == 0 {
		s.push()
	}
	s.scopes[len(s.scopes)-1][name] = b
}

func (s *scopeStack) lookup(name string) (binding, bool) {
	if len(s.scopes) == 0 {
		return binding{}, false
	}
	b, ok := s.scopes[len(s.scopes)-1][name]
	return b, ok
}
