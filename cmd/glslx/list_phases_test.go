package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestListPhasesPrintsEveryBuiltin(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list-phases"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list-phases: %v", err)
	}

	for _, name := range []string{
		"remove-uniforms-duplicated-in-block",
		"shadow2d-to-texture",
		"out-declaration-layout-location",
		"move-unsized-array-specifier-to-type",
	} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("expected %q in list-phases output, got:\n%s", name, out.String())
		}
	}
}
