package ast

import (
	"github.com/dolthub/maphash"
)

// IndexPolicy selects how a Root's multimaps behave under mutation, per
// spec.md §3.2.
type IndexPolicy int

const (
	// PolicyExact maintains indices on every insertion/removal and
	// preserves stable insertion order among equal-key entries.
	PolicyExact IndexPolicy = iota
	// PolicyUnordered maintains indices but does not preserve ordering
	// among equal-key entries.
	PolicyUnordered
)

// nodeMultimap is a string-keyed multimap of Node values. It is backed by a
// maphash.Hasher instead of Go's builtin map hashing: Root indices sit on
// the hot path of every register/unregister during a parse or a bulk
// clone+insert. Every lookup hashes its key afresh; no hash is cached
// between calls.
type nodeMultimap struct {
	policy  IndexPolicy
	hasher  maphash.Hasher[string]
	buckets map[uint64][]bucketEntry
}

type bucketEntry struct {
	key   string
	nodes []Node
}

func newNodeMultimap(policy IndexPolicy) *nodeMultimap {
	return &nodeMultimap{
		policy:  policy,
		hasher:  maphash.NewHasher[string](),
		buckets: make(map[uint64][]bucketEntry),
	}
}

func (m *nodeMultimap) entry(key string, create bool) *bucketEntry {
	h := m.hasher.Hash(key)
	bucket := m.buckets[h]
	for i := range bucket {
		if bucket[i].key == key {
			return &bucket[i]
		}
	}
	if !create {
		return nil
	}
	bucket = append(bucket, bucketEntry{key: key})
	m.buckets[h] = bucket
	return &bucket[len(bucket)-1]
}

func (m *nodeMultimap) insert(key string, n Node) {
	e := m.entry(key, true)
	// A node already present under this exact key is a re-register, not a
	// second occurrence: ParseExternalDeclaration/ParseStatement/
	// ParseExpression register a freestanding fragment via AttachFragment,
	// and splicing that same fragment into a tree afterwards (e.g.
	// TranslationUnit.InsertExternal) registers it again. Both policies
	// still preserve relative insertion order among distinct nodes sharing
	// a key; PolicyUnordered just doesn't guarantee it.
	for _, existing := range e.nodes {
		if existing == n {
			return
		}
	}
	e.nodes = append(e.nodes, n)
}

func (m *nodeMultimap) remove(key string, n Node) {
	e := m.entry(key, false)
	if e == nil {
		return
	}
	for i, existing := range e.nodes {
		if existing == n {
			e.nodes = append(e.nodes[:i], e.nodes[i+1:]...)
			break
		}
	}
}

func (m *nodeMultimap) get(key string) []Node {
	e := m.entry(key, false)
	if e == nil {
		return nil
	}
	out := make([]Node, len(e.nodes))
	copy(out, e.nodes)
	return out
}

func (m *nodeMultimap) stream(key string, yield func(Node) bool) {
	for _, n := range m.get(key) {
		if !yield(n) {
			return
		}
	}
}
