package nnet

import (
	"math/rand"
	"testing"
)

func testData() Data {
	labels := []int32{0, 1, 2, 1, 0, 2}
	inputs := []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	return NewData(3, []int{2}, labels, inputs)
}

func TestDataset(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := NewDataset(testData(), 4, 0, rng)
	if d.Samples != 6 || d.BatchSize != 4 || d.Batches != 2 {
		t.Fatalf("got samples=%d batch=%d batches=%d", d.Samples, d.BatchSize, d.Batches)
	}
	x, y, y1H := d.GetBatch(0)
	if len(x) != 8 || len(y) != 4 || len(y1H) != 12 {
		t.Fatalf("batch 0 sizes: %d %d %d", len(x), len(y), len(y1H))
	}
	if x[2] != 2 || x[3] != 3 {
		t.Errorf("batch 0 input sample 1 = %v", x[2:4])
	}
	for i, label := range y {
		for c := 0; c < 3; c++ {
			want := float32(0)
			if int32(c) == label {
				want = 1
			}
			if y1H[i*3+c] != want {
				t.Errorf("one hot mismatch at sample %d class %d", i, c)
			}
		}
	}
	x, y, _ = d.GetBatch(1)
	if len(x) != 4 || len(y) != 2 {
		t.Errorf("final partial batch sizes: %d %d", len(x), len(y))
	}
}

func TestShuffle(t *testing.T) {
	d1 := NewDataset(testData(), 0, 0, rand.New(rand.NewSource(7)))
	d2 := NewDataset(testData(), 0, 0, rand.New(rand.NewSource(7)))
	d1.Shuffle()
	d2.Shuffle()
	_, y1, _ := d1.GetBatch(0)
	_, y2, _ := d2.GetBatch(0)
	for i := range y1 {
		if y1[i] != y2[i] {
			t.Fatalf("shuffle is not reproducible for a fixed seed: %v != %v", y1, y2)
		}
	}
	d1.Rewind()
	_, y1, _ = d1.GetBatch(0)
	want := []int32{0, 1, 2, 1, 0, 2}
	for i := range y1 {
		if y1[i] != want[i] {
			t.Fatalf("rewind: got labels %v", y1)
		}
	}
}

func TestMaxSamples(t *testing.T) {
	d := NewDataset(testData(), 0, 4, rand.New(rand.NewSource(1)))
	if d.Samples != 4 || d.BatchSize != 4 || d.Batches != 1 {
		t.Errorf("got samples=%d batch=%d batches=%d", d.Samples, d.BatchSize, d.Batches)
	}
}

func TestSaveLoadData(t *testing.T) {
	DataDir = t.TempDir()
	if err := SaveDataFile(testData(), "check_train"); err != nil {
		t.Fatal(err)
	}
	m, err := LoadData("check")
	if err != nil {
		t.Fatal(err)
	}
	d, ok := m["train"]
	if !ok {
		t.Fatal("train set not loaded")
	}
	if d.Len() != 6 || len(d.Classes()) != 3 {
		t.Errorf("loaded %d samples %d classes", d.Len(), len(d.Classes()))
	}
	if _, ok := m["test"]; ok {
		t.Error("unexpected test set")
	}
}
