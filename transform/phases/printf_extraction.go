package phases

import (
	"fmt"
	"strings"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/printer"
	"github.com/oxhq/glsltransform/transform"
)

// PrintfJob records one extracted printf call: its format text (quotes
// stripped) and the source text of each argument following the format,
// in call order.
type PrintfJob struct {
	Format string
	Args   []string
}

// PrintfExtractor accumulates the PrintfJobs a PrintfExtraction run
// produces, in call-site order.
type PrintfExtractor struct {
	Jobs []PrintfJob
}

const printfStructSource = "layout(binding = 0, std430) restrict buffer PrintfOutputStream { uint index; uint stream[]; } printfOutputStruct;"

// PrintfExtraction rewrites every bare `printf(fmt, args...);` statement
// into an atomic reservation against a shared output buffer plus one
// uint-encoded write per header/argument slot, and records each call's
// format and argument text on the returned PrintfExtractor (spec.md §8
// scenario 6). The backing buffer declaration is injected at most once
// regardless of how many printf calls are rewritten.
func PrintfExtraction() (*transform.Phase, *PrintfExtractor) {
	extractor := &PrintfExtractor{}
	phase := transform.NewRunPhase("printf-extraction", func(env *transform.Env) error {
		calls := collectPrintfCalls(env)
		if len(calls) == 0 {
			return nil
		}
		if len(env.Root.GetExternalDeclarations("printfOutputStruct")) == 0 {
			if _, err := env.InjectExternalDeclaration(printfStructSource, transform.AtBeforeDeclarations); err != nil {
				return err
			}
		}
		for i, call := range calls {
			job, block, err := buildPrintfReplacement(env, call, i)
			if err != nil {
				return err
			}
			stmt, ok := call.Parent().(*ast.ExpressionStatement)
			if !ok {
				return fmt.Errorf("printf-extraction: call %d is not a bare statement", i)
			}
			if err := ast.ReplaceByAndDelete(stmt, block); err != nil {
				return err
			}
			extractor.Jobs = append(extractor.Jobs, job)
		}
		return nil
	})
	return phase, extractor
}

func collectPrintfCalls(env *transform.Env) []*ast.FunctionCallExpression {
	var calls []*ast.FunctionCallExpression
	for _, n := range env.Root.GetNodes(ast.KindFunctionCall) {
		call := n.(*ast.FunctionCallExpression)
		if call.Name.Name() == "printf" && len(call.Args) > 0 {
			calls = append(calls, call)
		}
	}
	return calls
}

// buildPrintfReplacement builds the atomic-add block for one printf
// call and the PrintfJob describing it. Slot 0 carries the job index so
// a consumer of the output buffer can tell which printf produced a
// given run of slots; slot i+1 carries argument i, uint-encoded via
// floatBitsToUint since the buffer has a single numeric element type.
func buildPrintfReplacement(env *transform.Env, call *ast.FunctionCallExpression, jobIndex int) (PrintfJob, *ast.CompoundStatement, error) {
	formatLit, ok := call.Args[0].(*ast.LiteralExpression)
	if !ok || formatLit.LitKind != ast.LiteralString {
		return PrintfJob{}, nil, fmt.Errorf("printf-extraction: call %d's format argument is not a string literal", jobIndex)
	}
	job := PrintfJob{Format: strings.Trim(formatLit.Raw, `"`)}

	values := call.Args[1:]
	base := fmt.Sprintf("__printfBase%d", jobIndex)

	var b strings.Builder
	fmt.Fprintf(&b, "{ uint %s = atomicAdd(printfOutputStruct.index, uint(%d));\n", base, 1+len(values))
	fmt.Fprintf(&b, "printfOutputStruct.stream[%s + 0u] = uint(%d);\n", base, jobIndex)
	for i, v := range values {
		src := printer.PrintExpression(v)
		job.Args = append(job.Args, src)
		fmt.Fprintf(&b, "printfOutputStruct.stream[%s + %du] = floatBitsToUint(float(%s));\n", base, i+1, src)
	}
	b.WriteString("}")

	block, err := env.Parser.ParseCompoundStatement(env.Root, b.String())
	if err != nil {
		return PrintfJob{}, nil, err
	}
	return job, block, nil
}
