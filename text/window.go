package text

import (
	"fmt"

	"github.com/jswu18/deepgen/nnet"
)

// Windows holds the fixed length training sentences and next character
// targets sliced from a corpus. It implements the nnet.Data interface: the
// input per window is the sequence of one hot encoded characters and the
// label is the index of the character which follows the window.
type Windows struct {
	vocab  *Vocab
	text   []rune
	starts []int
	seqLen int
}

// NewWindows slices the text into overlapping windows of seqLen characters at
// the given step, each paired with the next character as target. The result
// is deterministic for a fixed corpus, seqLen and step.
func NewWindows(v *Vocab, text string, seqLen, step int) (*Windows, error) {
	if seqLen <= 0 || step <= 0 {
		return nil, fmt.Errorf("%w: window length %d step %d", nnet.ErrInvalidArgument, seqLen, step)
	}
	runes := []rune(text)
	if len(runes) <= seqLen {
		return nil, fmt.Errorf("%w: corpus of %d chars is too short for %d char windows", nnet.ErrInvalidArgument, len(runes), seqLen)
	}
	w := &Windows{vocab: v, text: runes, seqLen: seqLen}
	for i := 0; i+seqLen < len(runes); i += step {
		w.starts = append(w.starts, i)
	}
	fmt.Printf("windows: %d sentences of %d chars, step %d\n", len(w.starts), seqLen, step)
	return w, nil
}

func (w *Windows) Len() int { return len(w.starts) }

func (w *Windows) Classes() []string {
	classes := make([]string, w.vocab.Size())
	for i := range classes {
		classes[i] = string(w.vocab.Char(i))
	}
	return classes
}

func (w *Windows) Shape() []int { return []int{w.seqLen, w.vocab.Size()} }

func (w *Windows) Label(index []int, label []int32) {
	for i, ix := range index {
		next := w.text[w.starts[ix]+w.seqLen]
		id, _ := w.vocab.Index(next)
		label[i] = int32(id)
	}
}

func (w *Windows) Input(index []int, buf []float32) {
	nfeat := w.seqLen * w.vocab.Size()
	for i, ix := range index {
		// chars are from the corpus the vocab was built from, so encoding cannot fail
		w.vocab.OneHot(w.Sentence(ix), buf[i*nfeat:(i+1)*nfeat])
	}
}

// Sentence returns window number i as a string.
func (w *Windows) Sentence(i int) string {
	start := w.starts[i]
	return string(w.text[start : start+w.seqLen])
}

// Next returns the target character for window number i.
func (w *Windows) Next(i int) rune {
	return w.text[w.starts[i]+w.seqLen]
}

var _ nnet.Data = &Windows{}
