// Package model defines the robustness/adaptivity equation system.
//
// A [ParameterSet] bundles the physical constants of one model variant
// together with the integration controls (horizon and step size). Two
// variants exist:
//
//   - [Baseline]: the two-variable system from the paper, cubic
//     self-limitation on robustness and linear cross-coupling
//   - [Saturating]: cross-coupling passes through a bounded saturation
//     around a reference point (r_0, a_0)
//
// Parameters are addressed by the slider names of the original
// dashboard (q, alpha_r, gamma_r0, ...). Unknown names are rejected at
// the boundary with [ErrUnknownParam]; values are only checked for
// finiteness, never range-clamped.
package model
