package phases

import (
	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/template"
	"github.com/oxhq/glsltransform/transform"
)

// Shadow2DToTexture rewrites a `shadow2D(sampler, coord)` call into
// `vec4(texture(sampler, coord))`: shadow2D was removed from core GLSL in
// favor of the overloaded texture() built-in, and callers that still
// expect a vec4 result need the explicit constructor wrapping texture()'s
// narrower return type.
func Shadow2DToTexture() *transform.Phase {
	p := transform.NewMatchPhase("shadow2d-to-texture", ast.KindFunctionCall, nil, onShadow2DMatch)
	p.InitFunc = func(env *transform.Env) error {
		m, err := env.CompilePattern("shadow2d-to-texture", "shadow2D(__sampler*, __coord*)", template.ShapeExpression, "")
		if err != nil {
			return err
		}
		p.Matcher = m
		return nil
	}
	return p
}

func onShadow2DMatch(env *transform.Env, candidate ast.Node, m *template.Match) error {
	call := candidate.(*ast.FunctionCallExpression)
	sampler, _ := m.GetNodeMatch("sampler", "")
	coord, _ := m.GetNodeMatch("coord", "")

	texture := ast.NewFunctionCallExpression("texture",
		sampler.CloneInto(nil).(ast.Expression),
		coord.CloneInto(nil).(ast.Expression),
	)
	ast.WireTree(texture)
	replacement := ast.NewFunctionCallExpression("vec4", texture)
	ast.WireTree(replacement)
	env.Root.AttachFragment(replacement)

	return ast.ReplaceByAndDelete(call, replacement)
}
