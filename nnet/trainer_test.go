package nnet

import (
	"math/rand"
	"testing"
)

// fake model whose loss halves each epoch
type fakeModel struct {
	loss float64
}

func (m *fakeModel) Predict(input []float32) []float32 { return []float32{1, 0, 0} }

func (m *fakeModel) TrainEpoch(dset *Dataset) float64 {
	m.loss /= 2
	return m.loss
}

func TestTrainStopsAtMaxEpoch(t *testing.T) {
	dset := NewDataset(testData(), 0, 0, rand.New(rand.NewSource(1)))
	tester := NewTestBase(dset, 5, 0)
	Train(&fakeModel{loss: 16}, dset, tester)
	if len(tester.Stats) != 5 {
		t.Fatalf("ran %d epochs", len(tester.Stats))
	}
	if tester.Stats[4].Loss != 0.5 {
		t.Errorf("final loss %v", tester.Stats[4].Loss)
	}
	if tester.Stats[0].Error == 0 {
		t.Errorf("expected nonzero error from constant predictions")
	}
}

func TestTrainStopsAtMinLoss(t *testing.T) {
	tester := NewTestBase(nil, 100, 1)
	dset := NewDataset(testData(), 0, 0, rand.New(rand.NewSource(1)))
	Train(&fakeModel{loss: 16}, dset, tester)
	if len(tester.Stats) != 4 {
		t.Fatalf("ran %d epochs, want 4 to reach loss 1", len(tester.Stats))
	}
}
