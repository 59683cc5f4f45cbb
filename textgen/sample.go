// Package textgen generates text one character at a time from a trained next
// character model.
package textgen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jswu18/deepgen/nnet"
	"github.com/jswu18/deepgen/text"
)

// floor applied to predicted probabilities before taking the log
const epsilon = 1e-7

// Sampler generates text by repeatedly predicting the next character and
// feeding it back into a rolling window of SeqLen characters. Each generation
// run is strictly sequential; independent runs with separate generators may
// run concurrently.
type Sampler struct {
	Vocab  *text.Vocab
	SeqLen int
	Rng    *rand.Rand
}

// Generate returns the seed followed by n generated characters drawn at the
// given sampling temperature. The seed must be at least SeqLen characters and
// only its last SeqLen characters are used as the initial window.
func (s *Sampler) Generate(m nnet.Predictor, seed string, n int, temp float64) (string, error) {
	runes := []rune(seed)
	if len(runes) < s.SeqLen {
		return "", fmt.Errorf("%w: seed of %d chars is shorter than the %d char window", nnet.ErrInvalidArgument, len(runes), s.SeqLen)
	}
	if n < 0 {
		return "", fmt.Errorf("%w: cannot generate %d chars", nnet.ErrInvalidArgument, n)
	}
	if temp <= 0 {
		return "", fmt.Errorf("%w: temperature %g must be positive", nnet.ErrInvalidArgument, temp)
	}
	window := append([]rune{}, runes[len(runes)-s.SeqLen:]...)
	out := append(make([]rune, 0, len(runes)+n), runes...)
	buf := make([]float32, s.SeqLen*s.Vocab.Size())
	for i := 0; i < n; i++ {
		if err := s.Vocab.OneHot(string(window), buf); err != nil {
			return "", err
		}
		next := s.Vocab.Char(s.sample(m.Predict(buf), temp))
		out = append(out, next)
		// drop the oldest character and append the new one
		window = append(append(window[:0:0], window[1:]...), next)
	}
	return string(out), nil
}

// sample draws one index from the categorical distribution given by preds
// after temperature reweighting. Low temperatures sharpen the distribution
// towards the argmax, high temperatures flatten it towards uniform.
func (s *Sampler) sample(preds []float32, temp float64) int {
	weights := make([]float64, len(preds))
	sum := 0.0
	for i, p := range preds {
		weights[i] = math.Exp(math.Log(math.Max(float64(p), epsilon)) / temp)
		sum += weights[i]
	}
	r := s.Rng.Float64() * sum
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}
