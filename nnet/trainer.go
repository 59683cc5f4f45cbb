package nnet

import (
	"fmt"
	"time"

	"github.com/jswu18/deepgen/stats"
)

const emaEpochs = 10

// Training statistics for one epoch
type Stats struct {
	Epoch   int
	Loss    float64
	AvgLoss float64
	Error   float64
	Elapsed time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("epoch %3d:  loss =%8.4f  avg =%8.4f  error =%6.2f%%", s.Epoch, s.Loss, s.AvgLoss, s.Error*100)
}

// Tester interface to evaluate the performance after each epoch, Test method
// returns true if training should stop.
type Tester interface {
	Test(m Trainer, epoch int, loss float64, start time.Time) bool
}

// Tester which evaluates the error on the test set and records the stats.
type TestBase struct {
	Data     *Dataset
	Stats    []Stats
	MaxEpoch int
	MinLoss  float64
}

// Create a new base tester given the test dataset and stopping settings.
func NewTestBase(data *Dataset, maxEpoch int, minLoss float64) *TestBase {
	return &TestBase{Data: data, MaxEpoch: maxEpoch, MinLoss: minLoss}
}

// Reset stats prior to a new run
func (t *TestBase) Reset() {
	t.Stats = t.Stats[:0]
}

// Test performance of the model, called from the Train function on completion
// of each epoch.
func (t *TestBase) Test(m Trainer, epoch int, loss float64, start time.Time) bool {
	s := Stats{Epoch: epoch, Loss: loss, AvgLoss: loss}
	if len(t.Stats) > 0 {
		s.AvgLoss = stats.EMA(t.Stats[len(t.Stats)-1].AvgLoss).Add(loss, emaEpochs)
	}
	if t.Data != nil {
		s.Error = t.Data.Error(m, nil)
	}
	s.Elapsed = time.Since(start)
	t.Stats = append(t.Stats, s)
	return epoch >= t.MaxEpoch || loss <= t.MinLoss
}

type testLogger struct {
	*TestBase
	logEvery int
}

// Create a new tester which logs stats to stdout.
func NewTestLogger(data *Dataset, maxEpoch int, minLoss float64, logEvery int) Tester {
	return testLogger{TestBase: NewTestBase(data, maxEpoch, minLoss), logEvery: logEvery}
}

func (t testLogger) Test(m Trainer, epoch int, loss float64, start time.Time) bool {
	done := t.TestBase.Test(m, epoch, loss, start)
	s := t.Stats[len(t.Stats)-1]
	if done || t.logEvery == 0 || epoch%t.logEvery == 0 {
		fmt.Println(s)
	}
	if done {
		fmt.Printf("run time: %s\n", s.Elapsed.Round(10*time.Millisecond))
	}
	return done
}

// Train the model on the given training set, shuffling the samples each epoch.
func Train(m Trainer, dset *Dataset, test Tester) {
	done := false
	start := time.Now()
	for epoch := 1; !done; epoch++ {
		dset.Shuffle()
		loss := m.TrainEpoch(dset)
		done = test.Test(m, epoch, loss, start)
	}
}
