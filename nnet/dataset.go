package nnet

import (
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"
	"path"
	"strconv"
)

var (
	DataDir   = dataDir()
	DataTypes = []string{"train", "test"}
)

func dataDir() string {
	if dir := os.Getenv("DEEPGEN_DATA"); dir != "" {
		return dir
	}
	return "data"
}

func init() {
	gob.Register(data{})
}

// Data interface type represents the raw data for a training or test set
type Data interface {
	Len() int
	Classes() []string
	Shape() []int
	Label(index []int, label []int32)
	Input(index []int, buf []float32)
}

// Dataset type encapsulates a set of training or test data in batched form.
type Dataset struct {
	Data
	Samples   int
	BatchSize int
	Batches   int
	xBuffer   []float32
	yBuffer   []int32
	y1H       []float32
	indexes   []int
	nfeat     int
	nclass    int
	rng       *rand.Rand
}

// Create a new Dataset struct, allocate the batch buffers and set the batch
// size and maxSamples.
func NewDataset(data Data, batchSize, maxSamples int, rng *rand.Rand) *Dataset {
	d := &Dataset{Data: data, Samples: data.Len(), rng: rng}
	if maxSamples > 0 && d.Samples > maxSamples {
		d.Samples = maxSamples
	}
	if batchSize == 0 || batchSize > d.Samples {
		d.BatchSize = d.Samples
	} else {
		d.BatchSize = batchSize
	}
	d.Batches = d.Samples / d.BatchSize
	if d.Samples%d.BatchSize != 0 {
		d.Batches++
	}
	d.nfeat = Prod(data.Shape())
	d.nclass = len(data.Classes())
	d.xBuffer = make([]float32, d.nfeat*d.BatchSize)
	d.yBuffer = make([]int32, d.BatchSize)
	d.y1H = make([]float32, d.nclass*d.BatchSize)
	d.indexes = make([]int, d.Samples)
	for i := range d.indexes {
		d.indexes[i] = i
	}
	return d
}

// NFeat returns the flattened input size per sample.
func (d *Dataset) NFeat() int { return d.nfeat }

// Get input, labels and one hot encoded labels for given batch.
// The returned slices are only valid until the next call.
func (d *Dataset) GetBatch(batch int) (x []float32, y []int32, yOneHot []float32) {
	start := batch * d.BatchSize
	end := start + d.BatchSize
	if end > d.Samples {
		end = d.Samples
	}
	n := end - start
	x = d.xBuffer[:n*d.nfeat]
	y = d.yBuffer[:n]
	yOneHot = d.y1H[:n*d.nclass]
	d.Input(d.indexes[start:end], x)
	d.Label(d.indexes[start:end], y)
	OneHot(y, d.nclass, yOneHot)
	return
}

// Shuffle the data set
func (d *Dataset) Shuffle() {
	d.indexes = d.rng.Perm(d.Samples)
}

// Rewind to the original sample ordering
func (d *Dataset) Rewind() {
	for i := range d.indexes {
		d.indexes[i] = i
	}
}

// One hot encode labels into buf which should be sized classes per label.
func OneHot(y []int32, classes int, buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
	for i, label := range y {
		buf[i*classes+int(label)] = 1
	}
}

// Load train and test data from disk given the data set name.
func LoadData(dataSet string) (d map[string]Data, err error) {
	var data Data
	d = make(map[string]Data)
	for _, key := range DataTypes {
		name := dataSet + "_" + key
		if FileExists(name + ".dat") {
			if data, err = LoadDataFile(name); err != nil {
				return
			}
			d[key] = data
		}
	}
	return d, nil
}

// Decode data from file in gob format under DataDir
func LoadDataFile(name string) (Data, error) {
	filePath := path.Join(DataDir, name+".dat")
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fmt.Printf("loading data from %s.dat:\t", name)
	var d Data
	if err = gob.NewDecoder(f).Decode(&d); err != nil {
		return nil, err
	}
	fmt.Println(append(d.Shape(), d.Len()))
	return d, nil
}

// Encode in gob format and save to file under DataDir
func SaveDataFile(d Data, name string) error {
	filePath := path.Join(DataDir, name+".dat")
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Println("saving data to", name+".dat")
	return gob.NewEncoder(f).Encode(&d)
}

// Check if file exists under DataDir
func FileExists(name string) bool {
	filePath := path.Join(DataDir, name)
	_, err := os.Stat(filePath)
	return err == nil
}

type data struct {
	Class  []string
	Dims   []int
	Labels []int32
	Inputs []float32
}

// NewData function creates a new data set which implements the Data interface
func NewData(nclasses int, shape []int, labels []int32, inputs []float32) Data {
	classes := make([]string, nclasses)
	for i := range classes {
		classes[i] = strconv.Itoa(i)
	}
	return data{Class: classes, Dims: shape, Labels: labels, Inputs: inputs}
}

func (d data) Len() int { return len(d.Labels) }

func (d data) Classes() []string { return d.Class }

func (d data) Shape() []int { return d.Dims }

func (d data) Label(index []int, label []int32) {
	for i, ix := range index {
		label[i] = d.Labels[ix]
	}
}

func (d data) Input(index []int, buf []float32) {
	nfeat := Prod(d.Dims)
	for i, ix := range index {
		copy(buf[i*nfeat:], d.Inputs[ix*nfeat:(ix+1)*nfeat])
	}
}
