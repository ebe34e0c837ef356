// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package template

import (
	"sync"

	"github.com/tidwall/btree"
)

// Store indexes templates by id and version.
type Store struct {
	sync.RWMutex
	templates btree.Map[string, *btree.Map[int, *Template]]
}

func NewStore(templates ...*Template) *Store {
	s := &Store{}
	for _, t := range templates {
		s.Add(t)
	}
	return s
}

// Add registers t, replacing a template with the same id and version.
func (s *Store) Add(t *Template) {
	s.Lock()
	defer s.Unlock()

	versions, ok := s.templates.Get(t.ID)
	if !ok {
		versions = &btree.Map[int, *Template]{}
		s.templates.Set(t.ID, versions)
	}
	versions.Set(t.Version, t)
}

// Get looks a template up by id and version, 0 is the unversioned template.
func (s *Store) Get(id string, version int) (*Template, bool) {
	s.RLock()
	defer s.RUnlock()

	versions, ok := s.templates.Get(id)
	if !ok {
		return nil, false
	}
	return versions.Get(version)
}

// Latest returns the highest version of template id.
func (s *Store) Latest(id string) (*Template, bool) {
	s.RLock()
	defer s.RUnlock()

	versions, ok := s.templates.Get(id)
	if !ok {
		return nil, false
	}
	var latest *Template
	versions.Scan(func(_ int, t *Template) bool {
		latest = t
		return true
	})
	return latest, latest != nil
}

// Versions returns the known versions of template id in ascending order.
func (s *Store) Versions(id string) []int {
	s.RLock()
	defer s.RUnlock()

	versions, ok := s.templates.Get(id)
	if !ok {
		return nil
	}
	out := make([]int, 0, versions.Len())
	versions.Scan(func(version int, _ *Template) bool {
		out = append(out, version)
		return true
	})
	return out
}

// List returns every template ordered by id then version.
func (s *Store) List() []*Template {
	s.RLock()
	defer s.RUnlock()

	out := make([]*Template, 0)
	s.templates.Scan(func(_ string, versions *btree.Map[int, *Template]) bool {
		versions.Scan(func(_ int, t *Template) bool {
			out = append(out, t)
			return true
		})
		return true
	})
	return out
}
