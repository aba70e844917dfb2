package solve_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"
)

func TestSolveSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Solve Suite")
}

var _ = Describe("Solver", func() {
	var sv *solve.Solver

	BeforeEach(func() {
		sv = solve.New(solve.NewEuler())
	})

	DescribeTable("sample spacing",
		func(tMax, stepSize float64) {
			p := model.NewBaseline()
			p.TMax = tMax
			p.StepSize = stepSize

			tr, err := sv.Solve(p, model.InitialState())
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Len()).To(Equal(int(math.Floor(tMax/stepSize)) + 1))
			Expect(tr.Times[0]).To(BeZero())
			Expect(tr.Times[tr.Len()-1]).To(BeNumerically("<=", tMax))
			for i := 1; i < tr.Len(); i++ {
				Expect(tr.Times[i]).To(BeNumerically(">", tr.Times[i-1]))
			}
		},
		Entry("dashboard horizon", 100.0, 0.1),
		Entry("short horizon", 1.0, 0.01),
		Entry("single step", 2.0, 2.0),
		Entry("awkward ratio", 7.0, 0.3),
	)

	It("produces identical trajectories for identical inputs", func() {
		p := model.NewSaturating()
		a, err := solve.New(solve.NewRK4()).Solve(p, model.InitialState())
		Expect(err).NotTo(HaveOccurred())
		b, err := solve.New(solve.NewRK4()).Solve(p, model.InitialState())
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Times).To(Equal(b.Times))
		Expect(a.Robustness).To(Equal(b.Robustness))
		Expect(a.Adaptivity).To(Equal(b.Adaptivity))
	})

	It("stays finite on the dashboard defaults", func() {
		for _, p := range []*model.ParameterSet{model.NewBaseline(), model.NewSaturating()} {
			tr, err := sv.Solve(p, model.InitialState())
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.FiniteUntil()).To(Equal(-1), p.Variant().String())
		}
	})

	It("rejects a bad horizon before producing output", func() {
		p := model.NewBaseline()
		p.TMax = -1

		tr, err := sv.Solve(p, model.InitialState())
		Expect(err).To(MatchError(solve.ErrInvalidHorizon))
		Expect(tr).To(BeNil())
	})
})
