package ast

// declaredNamer is implemented by nodes that can own an entry in the
// external-declaration index: an ExternalDeclaration wrapping a uniform /
// interface block, or a FunctionDefinition.
type declaredNamer interface {
	DeclaredNames() []string
}

// Root is the per-tree registry described in spec.md §3.2: three multimaps
// (identifier, node-kind, external-declaration) kept in sync with the tree
// as nodes attach and detach.
type Root struct {
	identifierIndex         *nodeMultimap
	nodeIndex               *nodeMultimap
	externalDeclarationIndex *nodeMultimap
	unit                    *TranslationUnit
}

// NewRoot creates an empty Root with a single policy applied to all three
// multimaps. Most callers (tests, template instantiation) want this; the
// AST builder adapter uses NewRootWithPolicies to honor a RootSupplier
// that picks policies independently per spec.md §6.2.
func NewRoot(policy IndexPolicy) *Root {
	return NewRootWithPolicies(policy, policy, policy)
}

// NewRootWithPolicies creates an empty Root with the identifier, node, and
// external-declaration indices each under their own policy.
func NewRootWithPolicies(identifierPolicy, nodePolicy, externalDeclarationPolicy IndexPolicy) *Root {
	return &Root{
		identifierIndex:          newNodeMultimap(identifierPolicy),
		nodeIndex:                newNodeMultimap(nodePolicy),
		externalDeclarationIndex: newNodeMultimap(externalDeclarationPolicy),
	}
}

// Attach installs unit as this Root's tree, setting its root back-pointer
// and indexing its whole subtree. Used by the parser's AST builder once a
// TranslationUnit has been fully constructed, and by tests and template
// instantiation that build trees programmatically.
func (r *Root) Attach(unit *TranslationUnit) {
	r.unit = unit
	propagateRoot(unit, r)
	r.register(unit)
}

// TranslationUnit returns the tree attached to this Root, or nil.
func (r *Root) TranslationUnit() *TranslationUnit { return r.unit }

// AttachFragment indexes n and its subtree under r without giving it a
// structural parent. Used for freestanding fragments parsed on their own
// (Matcher/Template sources, ParseStatement/ParseExpression results)
// that are indexed and queryable but not yet spliced into a tree.
func (r *Root) AttachFragment(n Node) {
	propagateRoot(n, r)
	r.register(n)
}

// register indexes n and its whole subtree. If a build session is active
// on this goroutine for this Root, the mutation is queued instead.
func (r *Root) register(n Node) {
	if n == nil {
		return
	}
	if sess := r.currentSession(); sess != nil {
		sess.pending = append(sess.pending, pendingOp{insert: true, node: n})
		return
	}
	r.applyRegister(n)
}

// unregister removes n and its whole subtree from the indices.
func (r *Root) unregister(n Node) {
	if n == nil {
		return
	}
	if sess := r.currentSession(); sess != nil {
		sess.pending = append(sess.pending, pendingOp{insert: false, node: n})
		return
	}
	r.applyUnregister(n)
}

func (r *Root) applyRegister(n Node) {
	r.walkSubtree(n, func(node Node) {
		r.nodeIndex.insert(string(node.Kind()), node)
		if id, ok := node.(*Identifier); ok {
			r.identifierIndex.insert(id.Name(), node)
		}
		if _, isExt := node.(ExternalDecl); isExt {
			if dn, ok := node.(declaredNamer); ok {
				for _, name := range dn.DeclaredNames() {
					r.externalDeclarationIndex.insert(name, node)
				}
			}
		}
	})
}

func (r *Root) applyUnregister(n Node) {
	r.walkSubtree(n, func(node Node) {
		r.nodeIndex.remove(string(node.Kind()), node)
		if id, ok := node.(*Identifier); ok {
			r.identifierIndex.remove(id.Name(), node)
		}
		if _, isExt := node.(ExternalDecl); isExt {
			if dn, ok := node.(declaredNamer); ok {
				for _, name := range dn.DeclaredNames() {
					r.externalDeclarationIndex.remove(name, node)
				}
			}
		}
	})
}

func (r *Root) walkSubtree(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children() {
		if c != nil {
			r.walkSubtree(c, visit)
		}
	}
}

// renameIdentifier implements invariant I3: the identifier setter must
// unregister under the old name and register under the new one.
func (r *Root) renameIdentifier(id *Identifier, oldName, newName string) {
	// A rename takes effect immediately even inside a build session: the
	// session batches structural insert/remove of whole subtrees, but a
	// rename is a single already-attached node's identity changing, not a
	// structural edit, so queuing it (keyed on a name that is about to be
	// stale) would not compose correctly with the queue's semantics.
	r.identifierIndex.remove(oldName, id)
	r.identifierIndex.insert(newName, id)
}

// GetIdentifiers returns every Identifier currently indexed under name.
func (r *Root) GetIdentifiers(name string) []*Identifier {
	nodes := r.identifierIndex.get(name)
	out := make([]*Identifier, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.(*Identifier))
	}
	return out
}

// GetOneIdentifier returns an arbitrary Identifier named name, or an error
// if none exist.
func (r *Root) GetOneIdentifier(name string) (*Identifier, error) {
	ids := r.GetIdentifiers(name)
	if len(ids) == 0 {
		return nil, newUniquenessErr("getOne: no identifier named " + name)
	}
	return ids[0], nil
}

// GetUniqueIdentifier returns the single Identifier named name, erroring if
// zero or more than one exist.
func (r *Root) GetUniqueIdentifier(name string) (*Identifier, error) {
	ids := r.GetIdentifiers(name)
	if len(ids) != 1 {
		return nil, newUniquenessErr("getUnique: expected exactly one identifier named " + name)
	}
	return ids[0], nil
}

// StreamIdentifiers calls yield for every Identifier named name, stopping
// early if yield returns false.
func (r *Root) StreamIdentifiers(name string, yield func(*Identifier) bool) {
	r.identifierIndex.stream(name, func(n Node) bool {
		return yield(n.(*Identifier))
	})
}

// GetAncestorsOf returns the stream of unique ancestors of the given kind
// for every Identifier named name.
func (r *Root) GetAncestorsOf(name string, kind Kind) []Node {
	seen := make(map[Node]bool)
	var out []Node
	r.StreamIdentifiers(name, func(id *Identifier) bool {
		if anc := GetAncestor(id, kind); anc != nil && !seen[anc] {
			seen[anc] = true
			out = append(out, anc)
		}
		return true
	})
	return out
}

// GetNodes returns every node currently indexed under kind.
func (r *Root) GetNodes(kind Kind) []Node {
	return r.nodeIndex.get(string(kind))
}

// GetOneNode returns an arbitrary node of the given kind, or an error if
// none exist.
func (r *Root) GetOneNode(kind Kind) (Node, error) {
	nodes := r.GetNodes(kind)
	if len(nodes) == 0 {
		return nil, newUniquenessErr("getOne: no node of kind " + string(kind))
	}
	return nodes[0], nil
}

// GetUniqueNode returns the single node of the given kind, erroring if zero
// or more than one exist.
func (r *Root) GetUniqueNode(kind Kind) (Node, error) {
	nodes := r.GetNodes(kind)
	if len(nodes) != 1 {
		return nil, newUniquenessErr("getUnique: expected exactly one node of kind " + string(kind))
	}
	return nodes[0], nil
}

// StreamNodes calls yield for every node of the given kind.
func (r *Root) StreamNodes(kind Kind, yield func(Node) bool) {
	r.nodeIndex.stream(string(kind), yield)
}

// ExternalDeclarationEntry pairs a declared name with the external
// declaration (or function definition) node that owns it.
type ExternalDeclarationEntry struct {
	Name  string
	Owner Node
}

// StreamExternalDeclarations calls yield for every external declaration
// entry declaring name.
func (r *Root) StreamExternalDeclarations(name string, yield func(ExternalDeclarationEntry) bool) {
	r.externalDeclarationIndex.stream(name, func(n Node) bool {
		return yield(ExternalDeclarationEntry{Name: name, Owner: n})
	})
}

// GetExternalDeclarations is the non-streaming convenience form.
func (r *Root) GetExternalDeclarations(name string) []ExternalDeclarationEntry {
	var out []ExternalDeclarationEntry
	r.StreamExternalDeclarations(name, func(e ExternalDeclarationEntry) bool {
		out = append(out, e)
		return true
	})
	return out
}
