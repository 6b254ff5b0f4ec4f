// Package phases collects the concrete rewrite phases built on top of
// transform's Phase/Env primitives: one constructor per scenario,
// returning a *transform.Phase ready to register on a Transformation.
package phases
