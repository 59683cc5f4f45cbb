package textgen

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/jswu18/deepgen/nnet"
	"github.com/jswu18/deepgen/text"
)

// model which always returns the same distribution
type fixedModel struct {
	dist []float32
}

func (m fixedModel) Predict(input []float32) []float32 { return m.dist }

// model which deterministically predicts the character after the last one in
// the window, cycling through the vocabulary
type cycleModel struct {
	nchar int
}

func (m cycleModel) Predict(input []float32) []float32 {
	last := nnet.Argmax(input[len(input)-m.nchar:])
	dist := make([]float32, m.nchar)
	dist[(last+1)%m.nchar] = 1
	return dist
}

func newSampler(seqLen int, seed int64) *Sampler {
	return &Sampler{
		Vocab:  text.NewVocab("abcd"),
		SeqLen: seqLen,
		Rng:    rand.New(rand.NewSource(seed)),
	}
}

func TestGenerateEmpty(t *testing.T) {
	s := newSampler(4, 1)
	out, err := s.Generate(fixedModel{dist: []float32{1, 0, 0, 0}}, "abcd", 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out != "abcd" {
		t.Errorf("got %q, want seed unchanged", out)
	}
}

func TestGenerateLength(t *testing.T) {
	s := newSampler(4, 1)
	m := cycleModel{nchar: 4}
	out, err := s.Generate(m, "abcdab", 10, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 16 {
		t.Fatalf("got %d chars, want 16", len(out))
	}
	if !strings.HasPrefix(out, "abcdab") {
		t.Fatalf("output %q does not start with the seed", out)
	}
	// only the last 4 seed chars form the window, so generation continues
	// cyclically from 'b'
	if out[6:] != "cdabcdabcd" {
		t.Errorf("generated %q", out[6:])
	}
}

func TestGenerateGreedy(t *testing.T) {
	// at very low temperature sampling converges to the argmax
	m := fixedModel{dist: []float32{0.1, 0.2, 0.6, 0.1}}
	for seed := int64(1); seed <= 5; seed++ {
		s := newSampler(4, seed)
		out, err := s.Generate(m, "abcd", 20, 0.001)
		if err != nil {
			t.Fatal(err)
		}
		if out[4:] != strings.Repeat("c", 20) {
			t.Fatalf("seed %d: generated %q, want all 'c'", seed, out[4:])
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	s := newSampler(4, 1)
	m := fixedModel{dist: []float32{1, 0, 0, 0}}
	if out, err := s.Generate(m, "ab", 10, 1); !errors.Is(err, nnet.ErrInvalidArgument) || out != "" {
		t.Errorf("short seed: got %q, %v", out, err)
	}
	if _, err := s.Generate(m, "abcd", -1, 1); !errors.Is(err, nnet.ErrInvalidArgument) {
		t.Errorf("negative count: got %v", err)
	}
	if _, err := s.Generate(m, "abcd", 10, 0); !errors.Is(err, nnet.ErrInvalidArgument) {
		t.Errorf("zero temperature: got %v", err)
	}
	if _, err := s.Generate(m, "abcz", 10, 1); !errors.Is(err, nnet.ErrInvalidArgument) {
		t.Errorf("seed outside vocabulary: got %v", err)
	}
}

func TestSampleZeros(t *testing.T) {
	// zero probabilities must not break the temperature reweighting
	s := newSampler(4, 1)
	m := fixedModel{dist: []float32{0, 0, 1, 0}}
	out, err := s.Generate(m, "abcd", 10, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	if out[4:] != strings.Repeat("c", 10) {
		t.Errorf("generated %q", out[4:])
	}
}
