// Package pairs builds labeled pairs of digit images for the same or
// different comparison task.
package pairs

import (
	"encoding/gob"
	"fmt"
	"math/rand"

	"github.com/jswu18/deepgen/mnist"
	"github.com/jswu18/deepgen/nnet"
)

// ratio of oversampled draws to requested pairs in the balanced variant
const oversample = 10

var classNames = []string{"different", "same"}

func init() {
	gob.Register(&Set{})
}

// Set is an ordered collection of image pairs with a match flag per pair and,
// for the balanced variant, the source class label of each side. It
// implements the nnet.Data interface: the input per pair is the A image plane
// followed by the B image plane and the label is the match flag.
type Set struct {
	A, B   []*mnist.Image
	Match  []int32
	LabelA []int32
	LabelB []int32
	NClass int
}

func (s *Set) Len() int { return len(s.Match) }

func (s *Set) Classes() []string { return classNames }

func (s *Set) Shape() []int { return []int{mnist.Size, mnist.Size, 2} }

func (s *Set) Label(index []int, label []int32) {
	for i, ix := range index {
		label[i] = s.Match[ix]
	}
}

func (s *Set) Input(index []int, buf []float32) {
	nfeat := 2 * mnist.Size * mnist.Size
	for i, ix := range index {
		copy(buf[i*nfeat:], s.A[ix].Pix)
		copy(buf[i*nfeat+mnist.Size*mnist.Size:], s.B[ix].Pix)
	}
}

// OneHotLabels returns the per image one hot class vectors for the A and B
// side of each pair, used as auxiliary targets. Only valid for sets built by
// SampleBalanced.
func (s *Set) OneHotLabels() (a, b []float32) {
	a = make([]float32, s.Len()*s.NClass)
	b = make([]float32, s.Len()*s.NClass)
	nnet.OneHot(s.LabelA, s.NClass, a)
	nnet.OneHot(s.LabelB, s.NClass, b)
	return a, b
}

// Matches returns the number of pairs with the match flag set.
func (s *Set) Matches() int {
	n := 0
	for _, m := range s.Match {
		n += int(m)
	}
	return n
}

// Sample draws size pairs of images independently and uniformly at random
// with replacement from the source set. Each pair is labeled with whether the
// two digits match.
func Sample(rng *rand.Rand, src *mnist.Set, size int) (*Set, error) {
	if err := check(src, size); err != nil {
		return nil, err
	}
	ixA := indexes(rng, src.Len(), size)
	ixB := indexes(rng, src.Len(), size)
	return materialize(src, ixA, ixB), nil
}

// SampleBalanced draws pairs as per Sample but rebalances the result so that
// half of the pairs match and half do not, and records the source class label
// of each image for auxiliary one hot targets. It oversamples by a factor of
// 10, partitions the draws by match flag in draw order and truncates each
// partition to size/2, non matching pairs first. If the oversampled pool runs
// short of either class the returned set is silently smaller than size.
func SampleBalanced(rng *rand.Rand, src *mnist.Set, size int) (*Set, error) {
	if err := check(src, size); err != nil {
		return nil, err
	}
	half := size / 2
	ixA := indexes(rng, src.Len(), size*oversample)
	ixB := indexes(rng, src.Len(), size*oversample)
	var same, diff []int
	for i := range ixA {
		if src.Labels[ixA[i]] == src.Labels[ixB[i]] {
			if len(same) < half {
				same = append(same, i)
			}
		} else {
			if len(diff) < half {
				diff = append(diff, i)
			}
		}
	}
	keep := append(diff, same...)
	selA := make([]int, len(keep))
	selB := make([]int, len(keep))
	for i, ix := range keep {
		selA[i] = ixA[ix]
		selB[i] = ixB[ix]
	}
	return materialize(src, selA, selB), nil
}

func check(src *mnist.Set, size int) error {
	if src == nil || src.Len() == 0 {
		return fmt.Errorf("%w: empty source image set", nnet.ErrInvalidArgument)
	}
	if size <= 0 {
		return fmt.Errorf("%w: desired pair set size %d", nnet.ErrInvalidArgument, size)
	}
	return nil
}

func indexes(rng *rand.Rand, n, size int) []int {
	ix := make([]int, size)
	for i := range ix {
		ix[i] = rng.Intn(n)
	}
	return ix
}

func materialize(src *mnist.Set, ixA, ixB []int) *Set {
	s := &Set{
		A:      make([]*mnist.Image, len(ixA)),
		B:      make([]*mnist.Image, len(ixA)),
		Match:  make([]int32, len(ixA)),
		LabelA: make([]int32, len(ixA)),
		LabelB: make([]int32, len(ixA)),
		NClass: len(src.Classes()),
	}
	for i := range ixA {
		s.A[i] = src.Images[ixA[i]]
		s.B[i] = src.Images[ixB[i]]
		s.LabelA[i] = src.Labels[ixA[i]]
		s.LabelB[i] = src.Labels[ixB[i]]
		if s.LabelA[i] == s.LabelB[i] {
			s.Match[i] = 1
		}
	}
	return s
}
