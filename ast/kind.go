// Package ast defines the typed GLSL abstract syntax tree: node kinds, the
// Node interface, parent/root back-pointers, and the per-tree Root index.
package ast

// Kind tags every concrete node with its variant. Unlike an open interface
// hierarchy, a closed kind enum lets Root index nodes by exact type and lets
// visitors dispatch with a single switch.
type Kind string

const (
	// Top level.
	KindTranslationUnit Kind = "TranslationUnit"

	// External declarations.
	KindExternalDeclaration Kind = "ExternalDeclaration" // wraps a Declaration
	KindFunctionDefinition  Kind = "FunctionDefinition"
	KindLayoutDefaults      Kind = "LayoutDefaults"
	KindPragma              Kind = "Pragma"
	KindExtensionStatement  Kind = "ExtensionStatement"
	KindEmptyDeclaration    Kind = "EmptyDeclaration"
	KindVersionStatement    Kind = "VersionStatement"

	// Declarations.
	KindTypeAndInitDeclaration  Kind = "TypeAndInitDeclaration"
	KindInterfaceBlock          Kind = "InterfaceBlock"
	KindFunctionDeclaration     Kind = "FunctionDeclaration"
	KindPrecisionDeclaration    Kind = "PrecisionDeclaration"
	KindEmptyDeclarationStmt    Kind = "EmptyDeclarationStatement"
	KindDeclarationMember       Kind = "DeclarationMember"

	// Statements.
	KindCompoundStatement    Kind = "CompoundStatement"
	KindExpressionStatement  Kind = "ExpressionStatement"
	KindDeclarationStatement Kind = "DeclarationStatement"
	KindSelectionStatement   Kind = "SelectionStatement"
	KindSwitchStatement      Kind = "SwitchStatement"
	KindForStatement         Kind = "ForStatement"
	KindWhileStatement       Kind = "WhileStatement"
	KindDoWhileStatement     Kind = "DoWhileStatement"
	KindJumpStatement        Kind = "JumpStatement"
	KindCaseLabel            Kind = "CaseLabel"
	KindEmptyStatement       Kind = "EmptyStatement"

	// Expressions.
	KindReferenceExpression Kind = "ReferenceExpression"
	KindLiteralExpression   Kind = "LiteralExpression"
	KindGroupingExpression  Kind = "GroupingExpression"
	KindMemberAccess        Kind = "MemberAccessExpression"
	KindArrayAccess         Kind = "ArrayAccessExpression"
	KindFunctionCall        Kind = "FunctionCallExpression"
	KindMethodCall          Kind = "MethodCallExpression"
	KindPostfixExpression   Kind = "PostfixExpression"
	KindPrefixExpression    Kind = "PrefixExpression"
	KindUnaryExpression     Kind = "UnaryExpression"
	KindBinaryExpression    Kind = "BinaryExpression"
	KindConditionExpression Kind = "ConditionalExpression"
	KindSequenceExpression  Kind = "SequenceExpression"

	// Type system.
	KindFullySpecifiedType Kind = "FullySpecifiedType"
	KindTypeQualifier      Kind = "TypeQualifier"
	KindLayoutQualifier    Kind = "LayoutQualifier"
	KindLayoutQualifierPart Kind = "LayoutQualifierPart"
	KindTypeSpecifier      Kind = "TypeSpecifier"
	KindStructSpecifier    Kind = "StructSpecifier"
	KindArraySpecifier     Kind = "ArraySpecifier"

	// Leaf.
	KindIdentifier Kind = "Identifier"
)

// OperandShape classifies an expression's child arity for generic walks,
// independent of its concrete Kind.
type OperandShape int

const (
	OperandNone OperandShape = iota
	OperandUnary
	OperandBinary
	OperandTernary
	OperandMany
)

// Shape returns the generic operand arity for expression kinds; other kinds
// return OperandNone.
func (k Kind) Shape() OperandShape {
	switch k {
	case KindUnaryExpression, KindPrefixExpression, KindPostfixExpression, KindGroupingExpression:
		return OperandUnary
	case KindBinaryExpression, KindMemberAccess, KindArrayAccess:
		return OperandBinary
	case KindConditionExpression:
		return OperandTernary
	case KindFunctionCall, KindMethodCall, KindSequenceExpression:
		return OperandMany
	default:
		return OperandNone
	}
}
