package main

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders a unified diff between orig and mod, following
// termfx-morfx's util.UnifiedDiff shape (A/B split on newlines, file
// header naming the "modified" side).
func unifiedDiff(orig, mod, path string, context int) (string, error) {
	if orig == mod {
		return "", nil
	}
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(mod),
		FromFile: path,
		ToFile:   path + " (transformed)",
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(d)
}
