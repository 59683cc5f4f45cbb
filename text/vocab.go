package text

import (
	"fmt"
	"sort"

	"github.com/jswu18/deepgen/nnet"
)

// Vocab is the bijective mapping between the distinct characters of a corpus
// and dense integer indices in code point order. It is built once per corpus
// and immutable afterwards.
type Vocab struct {
	chars []rune
	index map[rune]int
}

// NewVocab enumerates the distinct characters in the text.
func NewVocab(text string) *Vocab {
	seen := make(map[rune]bool)
	for _, c := range text {
		seen[c] = true
	}
	v := &Vocab{index: make(map[rune]int, len(seen))}
	for c := range seen {
		v.chars = append(v.chars, c)
	}
	sort.Slice(v.chars, func(i, j int) bool { return v.chars[i] < v.chars[j] })
	for i, c := range v.chars {
		v.index[c] = i
	}
	return v
}

// Size returns the number of distinct characters.
func (v *Vocab) Size() int { return len(v.chars) }

// Index returns the index assigned to the character.
func (v *Vocab) Index(c rune) (int, bool) {
	ix, ok := v.index[c]
	return ix, ok
}

// Char returns the character at the given index.
func (v *Vocab) Char(i int) rune { return v.chars[i] }

// OneHot encodes the characters of s as consecutive one hot vectors in buf,
// which must be sized len(s) code points times Size and is zeroed first.
func (v *Vocab) OneHot(s string, buf []float32) error {
	for i := range buf {
		buf[i] = 0
	}
	for i, c := range []rune(s) {
		ix, ok := v.index[c]
		if !ok {
			return fmt.Errorf("%w: character %q is not in the vocabulary", nnet.ErrInvalidArgument, c)
		}
		buf[i*len(v.chars)+ix] = 1
	}
	return nil
}

// Decode recovers the character indices from consecutive one hot vectors.
func (v *Vocab) Decode(buf []float32) []int {
	n := len(buf) / len(v.chars)
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = nnet.Argmax(buf[i*len(v.chars) : (i+1)*len(v.chars)])
	}
	return ids
}
