package analysis

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/maps"
)

var _ = Describe("BifurcationDiagram", func() {
	It("finds one value in the stable region and two after the first doubling", func() {
		points, err := BifurcationDiagram(maps.Logistic, 0.5, 2.8, 3.2, 2, 2000, 64)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(2))

		Expect(points[0].Param).To(Equal(2.8))
		Expect(points[0].Values).To(HaveLen(1))
		Expect(points[0].Values[0]).To(BeNumerically("~", 1-1/2.8, 1e-6))

		Expect(points[1].Param).To(Equal(3.2))
		Expect(points[1].Values).To(HaveLen(2))
	})

	It("propagates generator errors", func() {
		_, err := BifurcationDiagram(maps.Logistic, 0.5, 2, 4, 0, 10, 10)
		Expect(err).To(MatchError(dynamo.ErrInvalidRangeCount))

		_, err = BifurcationDiagram(maps.Logistic, 0.5, 2, 4, 10, 10, 0)
		Expect(err).To(MatchError(dynamo.ErrInvalidLength))
	})

	It("skips diverged lanes", func() {
		table, err := iterate.Sweep(maps.Logistic, 0.5, 100, 5, dynamo.State{10})
		Expect(err).NotTo(HaveOccurred())
		points := BifurcationPoints(table, 0)
		Expect(points[0].Values).To(BeEmpty())
	})

	It("skips finite values too large to quantise", func() {
		table, err := iterate.NewTable(dynamo.State{10}, 1, [][]float64{{0.5}, {-1e17}, {-3e300}, {0.5}})
		Expect(err).NotTo(HaveOccurred())
		points := BifurcationPoints(table, DefaultResolution)
		Expect(points[0].Values).To(Equal([]float64{0.5}))
	})
})

var _ = Describe("BifurcationToASCII", func() {
	It("renders the requested canvas size", func() {
		points, err := BifurcationDiagram(maps.Logistic, 0.5, 2.5, 4, 60, 300, 50)
		Expect(err).NotTo(HaveOccurred())

		art := BifurcationToASCII(points, 60, 20)
		lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
		Expect(lines).To(HaveLen(20))
		Expect(art).To(ContainSubstring("•"))
	})

	It("returns nothing without data", func() {
		Expect(BifurcationToASCII(nil, 10, 10)).To(BeEmpty())
		Expect(BifurcationToASCII([]BifurcationPoint{{Param: 1}}, 10, 10)).To(BeEmpty())
	})
})

var _ = Describe("DetectPeriod", func() {
	attractor := func(r float64) []float64 {
		table, err := iterate.Sweep(maps.Logistic, 0.5, 5000, 256, dynamo.State{r})
		Expect(err).NotTo(HaveOccurred())
		return table.Column(0)
	}

	DescribeTable("logistic map periods",
		func(r float64, want int) {
			Expect(DetectPeriod(attractor(r), 1e-6, 64)).To(Equal(want))
		},
		Entry("fixed point", 2.9, 1),
		Entry("period two", 3.2, 2),
		Entry("period four", 3.5, 4),
		Entry("period three", 3.835, 3),
		Entry("chaos", 3.9, Chaotic),
	)

	It("needs enough data", func() {
		Expect(DetectPeriod([]float64{1, 1, 1}, 1e-6, 4)).To(Equal(Chaotic))
	})

	It("treats NaN as aperiodic", func() {
		Expect(DetectPeriod([]float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()}, 1e-6, 2)).To(Equal(Chaotic))
	})

	It("describes periods", func() {
		Expect(DescribePeriod(1)).To(Equal("fixed point"))
		Expect(DescribePeriod(8)).To(Equal("period-8"))
		Expect(DescribePeriod(Chaotic)).To(Equal("chaotic"))
	})
})

var _ = Describe("LyapunovExponent", func() {
	It("is negative in the periodic region", func() {
		Expect(LyapunovExponent(maps.Logistic, 0.5, 2.9, 500, 5000, 1e-9)).To(BeNumerically("<", 0))
		Expect(LyapunovExponent(maps.Logistic, 0.5, 3.2, 500, 5000, 1e-9)).To(BeNumerically("<", 0))
	})

	It("matches ln 2 at r = 4", func() {
		lambda := LyapunovExponent(maps.Logistic, 0.3, 4, 100, 20000, 1e-9)
		Expect(lambda).To(BeNumerically("~", math.Ln2, 0.05))
		Expect(LogisticLyapunov(0.3, 4, 100, 20000)).To(BeNumerically("~", math.Ln2, 0.05))
	})

	It("agrees with the derivative formula", func() {
		for _, r := range []float64{2.5, 3.3, 3.7, 3.9} {
			numeric := LyapunovExponent(maps.Logistic, 0.4, r, 1000, 10000, 1e-10)
			exact := LogisticLyapunov(0.4, r, 1000, 10000)
			Expect(numeric).To(BeNumerically("~", exact, 0.05), "r=%v", r)
		}
	})

	It("reports divergence as NaN", func() {
		Expect(math.IsNaN(LyapunovExponent(maps.Logistic, 0.5, 10, 0, 100, 1e-9))).To(BeTrue())
	})

	It("computes a spectrum in parameter order", func() {
		rs := dynamo.State{2.9, 3.9}
		spectrum := LyapunovSpectrum(maps.Logistic, 0.5, rs, 500, 5000, 1e-9, 2)
		Expect(spectrum).To(HaveLen(2))
		Expect(spectrum[0]).To(BeNumerically("<", 0))
		Expect(spectrum[1]).To(BeNumerically(">", 0))
	})
})
