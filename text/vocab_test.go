package text

import (
	"errors"
	"testing"

	"github.com/jswu18/deepgen/nnet"
)

func TestVocab(t *testing.T) {
	v := NewVocab("the cat sat on the mat")
	want := " acehmnost"
	if v.Size() != len(want) {
		t.Fatalf("vocab size %d, want %d", v.Size(), len(want))
	}
	for i, c := range want {
		if v.Char(i) != c {
			t.Errorf("char %d = %q, want %q", i, v.Char(i), c)
		}
		ix, ok := v.Index(c)
		if !ok || ix != i {
			t.Errorf("index of %q = %d %v", c, ix, ok)
		}
	}
	if _, ok := v.Index('z'); ok {
		t.Error("found index for char not in corpus")
	}
}

func TestVocabIdempotent(t *testing.T) {
	corpus := "some corpus text with repeated characters"
	v1 := NewVocab(corpus)
	v2 := NewVocab(corpus)
	if v1.Size() != v2.Size() {
		t.Fatalf("sizes differ: %d %d", v1.Size(), v2.Size())
	}
	for i := 0; i < v1.Size(); i++ {
		if v1.Char(i) != v2.Char(i) {
			t.Errorf("char %d differs: %q %q", i, v1.Char(i), v2.Char(i))
		}
	}
}

func TestOneHot(t *testing.T) {
	v := NewVocab("abc")
	buf := make([]float32, 2*v.Size())
	if err := v.OneHot("cb", buf); err != nil {
		t.Fatal(err)
	}
	want := []float32{0, 0, 1, 0, 1, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("encoded %v, want %v", buf, want)
		}
	}
	ids := v.Decode(buf)
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Errorf("decoded %v", ids)
	}
	if err := v.OneHot("ax", buf[:2*v.Size()]); !errors.Is(err, nnet.ErrInvalidArgument) {
		t.Errorf("unknown char: got %v", err)
	}
}
