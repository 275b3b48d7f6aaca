// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package alias maps free-text queries to canonical historical identities
// and their known pseudonyms using a static, ordered lookup table.
package alias

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one canonical identity and its pseudonyms. Name and Aliases are
// lowercase.
type Entry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Table is an ordered alias table. Order is the lookup tie-break.
type Table []Entry

// DefaultTable returns the built-in table of Uzbek authors.
func DefaultTable() Table {
	return Table{
		{Name: "abdulla qodiriy", Aliases: []string{"julqunboy", "dumbul", "ovsar", "obid ketmon", "shig'ayboy"}},
		{Name: "alisher navoiy", Aliases: []string{"foniy", "navoiy"}},
		{Name: "zahiriddin muhammad bobur", Aliases: []string{"bobur"}},
		{Name: "cho'lpon", Aliases: []string{"abdulhamid sulaymon o'g'li"}},
		{Name: "fitrat", Aliases: []string{"abdurauf fitrat"}},
		{Name: "oybek", Aliases: []string{"muso toshmuhammad o'g'li"}},
	}
}

// LoadFile reads a YAML sequence of {name, aliases} entries. Names and
// aliases are lowercased. An alias claimed by two entries is an error.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias file: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing alias file: %w", err)
	}

	owner := make(map[string]string)
	for i := range t {
		t[i].Name = normalize(t[i].Name)
		if t[i].Name == "" {
			return nil, fmt.Errorf("alias file entry %d has no name", i+1)
		}
		for j, a := range t[i].Aliases {
			a = normalize(a)
			t[i].Aliases[j] = a
			if prev, ok := owner[a]; ok && prev != t[i].Name {
				return nil, fmt.Errorf("alias %q belongs to both %q and %q", a, prev, t[i].Name)
			}
			owner[a] = t[i].Name
		}
	}
	return t, nil
}

// Resolver looks queries up in an immutable table.
type Resolver struct {
	table Table
	index map[string]int // canonical name → position in table
}

// NewResolver returns a Resolver over a copy of t.
func NewResolver(t Table) *Resolver {
	r := &Resolver{
		table: make(Table, len(t)),
		index: make(map[string]int, len(t)),
	}
	for i, e := range t {
		aliases := append([]string(nil), e.Aliases...)
		r.table[i] = Entry{Name: e.Name, Aliases: aliases}
		if _, dup := r.index[e.Name]; !dup {
			r.index[e.Name] = i
		}
	}
	return r
}

// Resolve returns the canonical name and aliases for query. An exact match
// on a canonical name wins; otherwise the first entry whose alias list
// contains the query wins. The returned slice is a copy.
func (r *Resolver) Resolve(query string) (canonical string, aliases []string, ok bool) {
	q := normalize(query)
	if q == "" {
		return "", nil, false
	}
	if i, found := r.index[q]; found {
		return r.entry(i)
	}
	for i, e := range r.table {
		for _, a := range e.Aliases {
			if a == q {
				return r.entry(i)
			}
		}
	}
	return "", nil, false
}

func (r *Resolver) entry(i int) (string, []string, bool) {
	e := r.table[i]
	return e.Name, append([]string(nil), e.Aliases...), true
}

// Len returns the number of canonical identities.
func (r *Resolver) Len() int { return len(r.table) }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TitleCase capitalizes the first letter of each word and lowercases the
// rest. Apostrophes inside a word do not start a new word, so "cho'lpon"
// becomes "Cho'lpon".
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// TitleCaseAll applies TitleCase to every element.
func TitleCaseAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = TitleCase(s)
	}
	return out
}
