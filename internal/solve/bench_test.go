package solve

import (
	"testing"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
)

// The explorer re-solves the full horizon on every keystroke, so a
// complete 1001-sample solve has to be far below a frame.

func BenchmarkSolveEuler(b *testing.B) {
	p := model.NewBaseline()
	initial := model.InitialState()
	sv := New(NewEuler())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sv.Solve(p, initial); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveRK4(b *testing.B) {
	p := model.NewBaseline()
	initial := model.InitialState()
	sv := New(NewRK4())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sv.Solve(p, initial); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveSaturating(b *testing.B) {
	p := model.NewSaturating()
	initial := model.InitialState()
	sv := New(NewEuler())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sv.Solve(p, initial); err != nil {
			b.Fatal(err)
		}
	}
}
