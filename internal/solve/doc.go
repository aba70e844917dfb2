// Package solve integrates the robustness/adaptivity system over a
// bounded horizon with a fixed-step explicit scheme.
//
// Solve is a pure function of (parameters, initial state): it holds no
// state between calls, never mutates its inputs, and returns the same
// trajectory bit for bit on identical inputs. It is meant to be
// re-invoked wholesale on every slider tick; for the sample counts the
// dashboard uses (hundreds to a few thousand) a full re-solve is a
// sub-millisecond operation.
//
// Non-finite states are not errors. Under unstable parameter choices
// the cubic term overflows and the remaining samples carry Inf/NaN;
// that is a physically meaningful outcome, and the visualization layer
// is expected to degrade gracefully.
package solve
