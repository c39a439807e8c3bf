package scenario_test

import (
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/motion"
	"github.com/mzhv/oscil/internal/scenario"
)

var _ = Describe("Registry", func() {
	var reg *scenario.Registry

	BeforeEach(func() {
		reg = scenario.NewRegistry()
	})

	It("lists the builtins sorted by name", func() {
		names := reg.Names()
		Expect(names).To(ContainElements(
			"constant", "doublewell", "drift", "driven", "harmonic", "pendulum"))
		Expect(sort.StringsAreSorted(names)).To(BeTrue())
	})

	It("rejects unknown names", func() {
		_, err := reg.Get("warpdrive")
		Expect(err).To(MatchError(ContainSubstring("unknown scenario")))
	})

	It("hands out fresh scenarios per Get", func() {
		a, err := reg.Get("harmonic")
		Expect(err).NotTo(HaveOccurred())
		b, err := reg.Get("harmonic")
		Expect(err).NotTo(HaveOccurred())

		a.Params.H = 1
		Expect(b.Params.H).NotTo(Equal(a.Params.H))
	})
})

var _ = Describe("builtin scenarios", func() {
	reg := scenario.NewRegistry()

	DescribeTable("reproduce their closed forms at the horizon",
		func(name string) {
			s, err := reg.Get(name)
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Check(res)).To(Succeed())
		},
		Entry("drift", "drift"),
		Entry("constant", "constant"),
		Entry("harmonic", "harmonic"),
		Entry("driven", "driven"),
	)

	DescribeTable("stay finite where no closed form exists",
		func(name string) {
			s, err := reg.Get(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Exact).To(BeNil())

			res, err := s.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsFinite()).To(BeTrue())
			Expect(s.Check(res)).To(Succeed())
		},
		Entry("pendulum", "pendulum"),
		Entry("doublewell", "doublewell"),
	)

	It("records one trace sample per step", func() {
		s, err := reg.Get("drift")
		Expect(err).NotTo(HaveOccurred())

		res, trace, err := s.RunTrace()
		Expect(err).NotTo(HaveOccurred())
		Expect(trace.Len()).To(Equal(res.Steps))
		Expect(trace.Times[0]).To(BeZero())
	})

	It("keeps pendulum energy near its release value", func() {
		s, err := reg.Get("pendulum")
		Expect(err).NotTo(HaveOccurred())

		cons, ok := s.Field.(force.Conservative)
		Expect(ok).To(BeTrue())

		res, err := s.Run()
		Expect(err).NotTo(HaveOccurred())

		e0 := cons.Energy(s.Params.X0, s.Params.V0)
		eN := cons.Energy(res.X, res.V)
		Expect(eN).To(BeNumerically("~", e0, 0.05*e0))
	})

	It("flags a non-finite result", func() {
		s, err := reg.Get("drift")
		Expect(err).NotTo(HaveOccurred())

		bad := motion.Result{X: math.NaN(), V: 0, Steps: 1}
		Expect(s.Check(bad)).To(MatchError(motion.ErrNonFinite))
	})
})
