package pairs

import (
	"encoding/gob"
	"math"

	"github.com/jswu18/deepgen/nnet"
)

const (
	thresholdSteps = 200
	steepness      = 8
)

func init() {
	gob.Register(&Comparator{})
}

// Comparator is a baseline same or different model which thresholds the
// normalized correlation between the two image planes of a pair. Training
// picks the threshold with the lowest classification error on the data.
type Comparator struct {
	Threshold float64
}

func NewComparator() *Comparator {
	return &Comparator{Threshold: 1}
}

// Predict returns the score per class for a single flattened pair input.
func (c *Comparator) Predict(input []float32) []float32 {
	p := float32(sigmoid(steepness * (c.correlate(input) - c.Threshold)))
	return []float32{1 - p, p}
}

// Perform one training pass over the dataset, sweeping candidate thresholds
// and keeping the one which minimises the error. Returns the log loss.
func (c *Comparator) TrainEpoch(dset *nnet.Dataset) float64 {
	var corr []float64
	var match []int32
	for batch := 0; batch < dset.Batches; batch++ {
		x, y, _ := dset.GetBatch(batch)
		nfeat := dset.NFeat()
		for i := range y {
			corr = append(corr, c.correlate(x[i*nfeat:(i+1)*nfeat]))
			match = append(match, y[i])
		}
	}
	best, bestErrs := c.Threshold, len(corr)+1
	for step := 0; step <= thresholdSteps; step++ {
		th := -1 + 2*float64(step)/thresholdSteps
		errs := 0
		for i, r := range corr {
			if pred(r, th) != match[i] {
				errs++
			}
		}
		if errs < bestErrs {
			best, bestErrs = th, errs
		}
	}
	c.Threshold = best
	loss := 0.0
	for i, r := range corr {
		p := sigmoid(steepness * (r - c.Threshold))
		if match[i] == 1 {
			loss -= math.Log(math.Max(p, 1e-10))
		} else {
			loss -= math.Log(math.Max(1-p, 1e-10))
		}
	}
	return loss / float64(len(corr))
}

// normalized correlation of the two image planes, in the range -1 to 1
func (c *Comparator) correlate(input []float32) float64 {
	nfeat := len(input) / 2
	a, b := input[:nfeat], input[nfeat:]
	var meanA, meanB float64
	for i := 0; i < nfeat; i++ {
		meanA += float64(a[i])
		meanB += float64(b[i])
	}
	meanA /= float64(nfeat)
	meanB /= float64(nfeat)
	var dot, normA, normB float64
	for i := 0; i < nfeat; i++ {
		da, db := float64(a[i])-meanA, float64(b[i])-meanB
		dot += da * db
		normA += da * da
		normB += db * db
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / math.Sqrt(normA*normB)
}

func pred(r, threshold float64) int32 {
	if r > threshold {
		return 1
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// interface checks
var (
	_ nnet.Data    = &Set{}
	_ nnet.Trainer = &Comparator{}
)
