package nnet

import (
	"encoding/gob"
	"fmt"
	"os"
	"path"
)

// Predictor is the prediction interface exposed by a trained model: given one
// flattened input sample it returns a value per output class.
type Predictor interface {
	Predict(input []float32) []float32
}

// Trainer interface is implemented by models which can be fitted to a dataset.
// TrainEpoch performs one pass over the data and returns the training loss.
type Trainer interface {
	Predictor
	TrainEpoch(dset *Dataset) float64
}

// Save model as a single opaque artifact file under DataDir.
// Concrete model types must be registered with gob.
func SaveModel(m Predictor, name string) error {
	filePath := path.Join(DataDir, name+".model")
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Println("saving model to", name+".model")
	return gob.NewEncoder(f).Encode(&m)
}

// Load a model artifact saved with SaveModel.
func LoadModel(name string) (Predictor, error) {
	filePath := path.Join(DataDir, name+".model")
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fmt.Println("loading model from", name+".model")
	var m Predictor
	if err = gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Argmax returns the index of the largest value in the output vector.
func Argmax(out []float32) int {
	ix := 0
	for i, v := range out {
		if v > out[ix] {
			ix = i
		}
	}
	return ix
}

// Calculate the classification error of the model on the dataset.
// If the pred slice is not nil it is filled with the predicted classes.
func (d *Dataset) Error(m Predictor, pred []int32) float64 {
	errs := 0
	for batch := 0; batch < d.Batches; batch++ {
		x, y, _ := d.GetBatch(batch)
		for i := range y {
			class := int32(Argmax(m.Predict(x[i*d.nfeat : (i+1)*d.nfeat])))
			if class != y[i] {
				errs++
			}
			if pred != nil {
				pred[batch*d.BatchSize+i] = class
			}
		}
	}
	return float64(errs) / float64(d.Samples)
}
