// Package kv holds request header fields.
package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage keeps fields in the order they arrived, duplicates included. Keys are compared
// case-insensitively. A request carries only a handful of fields, so a linear scan over a
// slice beats a map here.
type Storage struct {
	pairs []Pair
}

// New returns a Storage with room for n fields.
func New(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{Key: key, Value: value})
	return s
}

// Lookup returns the value of the first field named key.
func (s *Storage) Lookup(key string) (string, bool) {
	for value := range s.Values(key) {
		return value, true
	}

	return "", false
}

// Value is Lookup without the presence flag. Absent and empty fields look the same.
func (s *Storage) Value(key string) string {
	value, _ := s.Lookup(key)
	return value
}

// Values yields the value of every field named key.
func (s *Storage) Values(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, pair := range s.pairs {
			if strcomp.EqualFold(pair.Key, key) && !yield(pair.Value) {
				return
			}
		}
	}
}

// All yields every field as it was received.
func (s *Storage) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

func (s *Storage) Len() int {
	return len(s.pairs)
}
