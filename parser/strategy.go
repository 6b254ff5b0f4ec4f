package parser

// ParsingStrategy selects the retry behavior spec.md §6.1 describes.
// This parser has no separate SLL/LL prediction modes (those are an
// ANTLR adaptive-LL-prediction concept); the strategy is modeled instead
// as a retry knob over the same recursive-descent grammar: a first
// attempt, and on failure a second attempt over freshly lexed tokens,
// after which the debug hook receives both errors. Both attempts run the
// same grammar and record errors the same way, so the second one fails
// wherever the first did. SLLOnly/LLOnly skip straight to one attempt.
type ParsingStrategy int

const (
	// SLLAndLLOnError is the default: try one attempt; on failure, refill
	// the token stream and retry once.
	SLLAndLLOnError ParsingStrategy = iota
	SLLOnly
	LLOnly
)

// RootSupplier chooses the Root's per-index policy combination the AST
// builder attaches the freshly built tree under (spec.md §6.2).
type RootSupplier int

const (
	// RootSupplierDefault applies the Exact (ordered) policy to all
	// three indices.
	RootSupplierDefault RootSupplier = iota
	// RootSupplierExactUnorderedEDExact keeps the identifier and
	// external-declaration indices ordered but lets the (much larger,
	// rarely order-sensitive) node-kind index drop ordering for lower
	// insertion overhead during a bulk parse.
	RootSupplierExactUnorderedEDExact
	// RootSupplierUnordered applies the Unordered policy everywhere,
	// for throughput-sensitive batch runs that never rely on
	// insertion-order iteration.
	RootSupplierUnordered
)
