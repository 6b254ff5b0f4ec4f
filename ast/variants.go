package ast

import "reflect"

// reflectIsNil reports whether a Node-typed value wraps a nil pointer, so
// optional typed slots (e.g. an unset initializer) can be left zero-valued
// instead of requiring callers to special-case every family member.
func reflectIsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// Marker interfaces group the concrete node structs into the families
// spec.md §3.1 describes (ExternalDeclaration, Declaration, Statement,
// Expression, type-system nodes), so typed child slots can be declared at
// the family level while each concrete struct still carries its own
// kind-specific fields.
type (
	ExternalDecl  interface{ Node; isExternalDecl() }
	Declaration   interface{ Node; isDeclaration() }
	Statement     interface{ Node; isStatement() }
	Expression    interface{ Node; isExpression() }
	TypeSpecifier interface{ Node; isTypeSpecifier() }
)

// nodesOf converts a typed slice of any Node-implementing family member
// into a []Node for Children(), skipping unset (nil pointer) optional
// slots so callers can leave them zero-valued.
func nodesOf[T Node](items ...T) []Node {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		if reflectIsNil(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// replaceInSlots replaces the first Node in slots that equals self with
// replacement (or removes it, if replacement is nil), mutating *slots in
// place. Used by list-node Replacer implementations.
func replaceInSlots(slots *[]Node, self, replacement Node) error {
	for i, n := range *slots {
		if n == self {
			if replacement == nil {
				*slots = append((*slots)[:i], (*slots)[i+1:]...)
			} else {
				(*slots)[i] = replacement
			}
			return nil
		}
	}
	return newDetachmentErr("replaceSelfIn: child not found in parent's slot")
}
