package template

import (
	"reflect"
	"strings"

	"github.com/oxhq/glsltransform/ast"
)

// isNilNode reports whether n is a Node-typed value wrapping a nil
// pointer, mirroring ast's own (unexported) reflectIsNil: a field like
// ForStatement.Cond can be nil, but a *ast.TypeQualifier nil field boxed
// into the ast.Node interface does not compare equal to a bare nil.
func isNilNode(n ast.Node) bool {
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

// placeholderName extracts the placeholder spelling carried by n, if any:
// an Identifier or a builtin type specifier whose text begins with prefix.
// Returns the name with the prefix stripped.
func placeholderName(n ast.Node, prefix string) (string, bool) {
	if isNilNode(n) || prefix == "" {
		return "", false
	}
	var raw string
	switch v := n.(type) {
	case *ast.Identifier:
		raw = v.Name()
	case *ast.BuiltinTypeSpecifier:
		raw = v.Name
	default:
		return "", false
	}
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	return strings.TrimPrefix(raw, prefix), true
}

// findPlaceholderNode walks n's subtree for the first node whose
// placeholder spelling (stripped of prefix and any trailing "*") equals
// name, letting Matcher/Template register holes by name instead of
// requiring the caller to keep a reference to the parsed node.
func findPlaceholderNode(n ast.Node, prefix, name string) ast.Node {
	if isNilNode(n) {
		return nil
	}
	if pn, ok := placeholderName(n, prefix); ok && strings.TrimSuffix(pn, "*") == name {
		return n
	}
	for _, c := range n.Children() {
		if found := findPlaceholderNode(c, prefix, name); found != nil {
			return found
		}
	}
	return nil
}
