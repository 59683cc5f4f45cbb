package stats

import (
	"math"
	"testing"
)

func TestAverage(t *testing.T) {
	s := new(Average)
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(x)
	}
	if s.Mean != 5 {
		t.Errorf("mean = %v", s.Mean)
	}
	if math.Abs(s.StdDev-2.138) > 0.001 {
		t.Errorf("stddev = %v", s.StdDev)
	}
}

func TestEMA(t *testing.T) {
	avg := 0.0
	for i := 0; i < 20; i++ {
		avg = EMA(avg).Add(10, 10)
	}
	if math.Abs(avg-10) > 1e-6 {
		t.Errorf("ema = %v", avg)
	}
}
