package oscil_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solosc/internal/oscil"
)

func grid(start, end float64, n int) []float64 {
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func sampleVariance(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var v float64
	for _, x := range xs {
		d := x - mean
		v += d * d
	}
	return v / float64(len(xs)-1)
}

var _ = Describe("stationary statistics", func() {
	It("converges to a signal variance of ampl^2/2", func() {
		// One mode observed over 200 damping times: the time average of the
		// squared signal estimates the stationary variance.
		const ampl = 2.0
		modes := oscil.ModeSet{
			Freq: []float64{2.7},
			Ampl: []float64{ampl},
			Eta:  []float64{1.0},
		}
		cfg := oscil.DefaultConfig()
		cfg.Seed = 7

		sim, err := oscil.New(modes, cfg)
		Expect(err).NotTo(HaveOccurred())

		signal, err := sim.Run(context.Background(), grid(0, 200, 4001))
		Expect(err).NotTo(HaveOccurred())

		Expect(sampleVariance(signal)).To(BeNumerically("~", ampl*ampl/2, 0.4*ampl*ampl/2))
	})

	It("keeps the same stationary variance on the parallel path", func() {
		const ampl = 2.0
		modes := oscil.ModeSet{
			Freq: []float64{2.7},
			Ampl: []float64{ampl},
			Eta:  []float64{1.0},
		}
		cfg := oscil.DefaultConfig()
		cfg.Seed = 21

		sim, err := oscil.New(modes, cfg)
		Expect(err).NotTo(HaveOccurred())

		signal, err := sim.RunParallel(context.Background(), grid(0, 200, 4001))
		Expect(err).NotTo(HaveOccurred())

		Expect(sampleVariance(signal)).To(BeNumerically("~", ampl*ampl/2, 0.4*ampl*ampl/2))
	})

	It("degenerates to a quasi-sinusoid for weak damping", func() {
		// With eta tiny relative to the span, the quadratures are frozen:
		// two samples determine the rest of the series.
		const freq = 2.0
		modes := oscil.ModeSet{
			Freq: []float64{freq},
			Ampl: []float64{1.0},
			Eta:  []float64{1e-6},
		}
		cfg := oscil.DefaultConfig()
		cfg.Seed = 13

		sim, err := oscil.New(modes, cfg)
		Expect(err).NotTo(HaveOccurred())

		times := grid(0, 10, 201)
		signal, err := sim.Run(context.Background(), times)
		Expect(err).NotTo(HaveOccurred())

		// Solve for the quadrature pair from the first two samples.
		th0 := 2 * math.Pi * freq * times[0]
		th1 := 2 * math.Pi * freq * times[1]
		det := math.Sin(th0)*math.Cos(th1) - math.Cos(th0)*math.Sin(th1)
		Expect(math.Abs(det)).To(BeNumerically(">", 1e-3))
		cs := (signal[0]*math.Cos(th1) - signal[1]*math.Cos(th0)) / det
		cc := (signal[1]*math.Sin(th0) - signal[0]*math.Sin(th1)) / det

		amp := math.Hypot(cs, cc)
		Expect(amp).To(BeNumerically(">", 1e-6))

		for j, t := range times {
			th := 2 * math.Pi * freq * t
			want := cs*math.Sin(th) + cc*math.Cos(th)
			Expect(signal[j]).To(BeNumerically("~", want, 0.01*amp),
				"sample %d at t=%v", j, t)
		}
	})
})
