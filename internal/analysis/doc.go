// Package analysis provides diagnostics over solved trajectories:
// phase-plane rendering, limit-cycle period estimation, and a small
// FFT for frequency analysis. Everything here consumes the immutable
// [solve.Trajectory] columns and never re-runs the solver.
package analysis
