package ast

import "testing"

func uniformTranslationUnit() (*Root, *ExternalDeclaration) {
	root := NewRoot(PolicyExact)
	tu := NewTranslationUnit()

	memberType := NewFullySpecifiedType(NewTypeQualifier(nil, QualUniform), NewBuiltinTypeSpecifier("vec4"))
	member := NewDeclarationMember(NewIdentifier("uColor"))
	decl := NewTypeAndInitDeclaration(memberType, member)
	ext := NewExternalDeclaration(decl)

	tu.InsertExternal(0, ext)
	root.Attach(tu)
	return root, ext
}

func TestExternalDeclarationIndexByDeclaredName(t *testing.T) {
	root, ext := uniformTranslationUnit()

	entries := root.GetExternalDeclarations("uColor")
	if len(entries) != 1 || entries[0].Owner != Node(ext) {
		t.Fatalf("expected uColor to resolve to the wrapping ExternalDeclaration, got %v", entries)
	}
}

// I4: every node in the node index under kind K has exact kind K.
func TestInvariantI4NodeIndexExactKind(t *testing.T) {
	root, _ := uniformTranslationUnit()

	for _, k := range []Kind{KindExternalDeclaration, KindTypeAndInitDeclaration, KindDeclarationMember, KindIdentifier} {
		for _, n := range root.GetNodes(k) {
			if n.Kind() != k {
				t.Fatalf("I4 violated: node under key %s has kind %s", k, n.Kind())
			}
		}
	}
}

// I5: a node is in the indices iff it is (transitively) attached to its
// Root. Detaching must remove it, attaching a fresh subtree must add it.
func TestInvariantI5AttachmentMatchesIndexMembership(t *testing.T) {
	root, ext := uniformTranslationUnit()

	if len(root.GetNodes(KindTypeAndInitDeclaration)) != 1 {
		t.Fatalf("I5 violated: attached TypeAndInitDeclaration not indexed")
	}

	if err := DetachAndDelete(ext); err != nil {
		t.Fatalf("DetachAndDelete: %v", err)
	}
	if len(root.GetNodes(KindTypeAndInitDeclaration)) != 0 {
		t.Fatalf("I5 violated: detached subtree still indexed")
	}
	if len(root.GetIdentifiers("uColor")) != 0 {
		t.Fatalf("I5 violated: detached identifier still indexed")
	}
}

func TestGetUniqueNodeErrorsOnZeroOrMany(t *testing.T) {
	root := NewRoot(PolicyExact)
	tu := NewTranslationUnit()
	root.Attach(tu)

	if _, err := root.GetUniqueNode(KindFunctionDefinition); err == nil {
		t.Fatalf("expected an error when zero nodes of the kind exist")
	}

	fnA := NewFunctionDefinition(
		NewFunctionDeclaration(NewFullySpecifiedType(nil, NewBuiltinTypeSpecifier("void")), NewIdentifier("a")),
		NewCompoundStatement(),
	)
	fnB := NewFunctionDefinition(
		NewFunctionDeclaration(NewFullySpecifiedType(nil, NewBuiltinTypeSpecifier("void")), NewIdentifier("b")),
		NewCompoundStatement(),
	)
	tu.InsertExternal(0, fnA)
	tu.InsertExternal(1, fnB)

	if _, err := root.GetUniqueNode(KindFunctionDefinition); err == nil {
		t.Fatalf("expected an error when more than one node of the kind exists")
	}
}

// P6: an index build session commits exactly the net of insertions minus
// removals performed inside it, even across a mix of inserts and a later
// removal of one of those same inserts.
func TestBuildSessionCommitsNetOfOperations(t *testing.T) {
	root := NewRoot(PolicyExact)
	tu := NewTranslationUnit()
	root.Attach(tu)

	var survivor, removed *FunctionDefinition
	root.IndexBuildSession(func() {
		survivor = NewFunctionDefinition(
			NewFunctionDeclaration(NewFullySpecifiedType(nil, NewBuiltinTypeSpecifier("void")), NewIdentifier("survivor")),
			NewCompoundStatement(),
		)
		removed = NewFunctionDefinition(
			NewFunctionDeclaration(NewFullySpecifiedType(nil, NewBuiltinTypeSpecifier("void")), NewIdentifier("removed")),
			NewCompoundStatement(),
		)
		tu.InsertExternal(0, survivor)
		tu.InsertExternal(1, removed)

		// Mid-session: nothing should be visible in the index yet.
		if len(root.GetNodes(KindFunctionDefinition)) != 0 {
			t.Fatalf("build session leaked a mutation before flush")
		}

		if err := DetachAndDelete(removed); err != nil {
			t.Fatalf("DetachAndDelete inside session: %v", err)
		}
	})

	nodes := root.GetNodes(KindFunctionDefinition)
	if len(nodes) != 1 || nodes[0] != Node(survivor) {
		t.Fatalf("P6 violated: expected only survivor indexed after flush, got %v", nodes)
	}
	if len(root.GetIdentifiers("removed")) != 0 {
		t.Fatalf("P6 violated: removed identifier still indexed after flush")
	}
}

func TestLayoutQualifierSetAddsLocation(t *testing.T) {
	_, ext := uniformTranslationUnit()
	decl := ext.Decl.(*TypeAndInitDeclaration)
	layout := NewLayoutQualifier()
	UpdateParents(decl.Type.Qualifier, nil, layout)
	decl.Type.Qualifier.Layout = layout

	decl.Type.Qualifier.Layout.Set("location", NewLiteralExpression(LiteralInt, "0"))

	part := decl.Type.Qualifier.Layout.Get("location")
	if part == nil {
		t.Fatalf("expected location part to be set")
	}
	if lit, ok := part.Value.(*LiteralExpression); !ok || lit.Raw != "0" {
		t.Fatalf("expected location value to be literal 0, got %v", part.Value)
	}
}
