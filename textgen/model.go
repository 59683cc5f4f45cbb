package textgen

import (
	"encoding/gob"
	"math"

	"github.com/jswu18/deepgen/nnet"
)

// additive smoothing applied to the next character counts
const smoothing = 0.01

func init() {
	gob.Register(&FreqModel{})
}

// FreqModel is an order k character frequency model. The distribution of the
// next character is estimated from counts conditioned on the trailing
// characters of the window, backing off to shorter contexts when a context
// was never observed. It implements the nnet model contract and stands in for
// the recurrent network of the original setup.
type FreqModel struct {
	Order  int
	NChar  int
	Counts map[string][]float64
}

// Create a new frequency model over nchar character classes conditioning on
// up to order trailing characters.
func NewFreqModel(nchar, order int) *FreqModel {
	return &FreqModel{Order: order, NChar: nchar, Counts: make(map[string][]float64)}
}

// Predict returns the next character distribution for a one hot encoded
// window of characters.
func (m *FreqModel) Predict(input []float32) []float32 {
	return m.dist(m.decode(input))
}

// Perform one counting pass over the dataset. Returns the cross entropy of
// the next character under the updated model.
func (m *FreqModel) TrainEpoch(dset *nnet.Dataset) float64 {
	nfeat := dset.NFeat()
	for batch := 0; batch < dset.Batches; batch++ {
		x, y, _ := dset.GetBatch(batch)
		for i := range y {
			ids := m.decode(x[i*nfeat : (i+1)*nfeat])
			for k := 1; k <= m.Order && k <= len(ids); k++ {
				key := m.key(ids, k)
				c := m.Counts[key]
				if c == nil {
					c = make([]float64, m.NChar)
					m.Counts[key] = c
				}
				c[y[i]]++
			}
		}
	}
	loss, samples := 0.0, 0
	for batch := 0; batch < dset.Batches; batch++ {
		x, y, _ := dset.GetBatch(batch)
		for i := range y {
			p := m.dist(m.decode(x[i*nfeat : (i+1)*nfeat]))
			loss -= math.Log(math.Max(float64(p[y[i]]), epsilon))
			samples++
		}
	}
	return loss / float64(samples)
}

// dist returns the smoothed next character distribution for the longest
// observed trailing context.
func (m *FreqModel) dist(ids []int) []float32 {
	for k := m.Order; k >= 1; k-- {
		if k > len(ids) {
			continue
		}
		if c, ok := m.Counts[m.key(ids, k)]; ok {
			total := 0.0
			for _, n := range c {
				total += n
			}
			p := make([]float32, m.NChar)
			for i, n := range c {
				p[i] = float32((n + smoothing) / (total + smoothing*float64(m.NChar)))
			}
			return p
		}
	}
	p := make([]float32, m.NChar)
	for i := range p {
		p[i] = 1 / float32(m.NChar)
	}
	return p
}

// key builds the map key for the last k character indices.
func (m *FreqModel) key(ids []int, k int) string {
	runes := make([]rune, k)
	for i, id := range ids[len(ids)-k:] {
		runes[i] = rune(id)
	}
	return string(runes)
}

// decode recovers the character indices from a one hot encoded window.
func (m *FreqModel) decode(input []float32) []int {
	ids := make([]int, len(input)/m.NChar)
	for i := range ids {
		ids[i] = nnet.Argmax(input[i*m.NChar : (i+1)*m.NChar])
	}
	return ids
}

var _ nnet.Trainer = &FreqModel{}
