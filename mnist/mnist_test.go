package mnist

import (
	"compress/gzip"
	"encoding/binary"
	"errors"
	"os"
	"path"
	"testing"

	"github.com/jswu18/deepgen/nnet"
)

// write a gzipped idx image and label file pair for the test set
func writeTestFiles(t *testing.T, labels []byte) {
	t.Helper()
	dir := path.Join(nnet.DataDir, "mnist")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path.Join(dir, "t10k-images-idx3-ubyte.gz"))
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	binary.Write(zw, binary.BigEndian, imageHeader{Magic: imageMagic, Num: uint32(len(labels)), Height: Size, Width: Size})
	pixels := make([]byte, Size*Size)
	for i := range labels {
		for j := range pixels {
			pixels[j] = byte(i * 10)
		}
		zw.Write(pixels)
	}
	zw.Close()
	f.Close()

	f, err = os.Create(path.Join(dir, "t10k-labels-idx1-ubyte.gz"))
	if err != nil {
		t.Fatal(err)
	}
	zw = gzip.NewWriter(f)
	binary.Write(zw, binary.BigEndian, labelHeader{Magic: labelMagic, Num: uint32(len(labels))})
	zw.Write(labels)
	zw.Close()
	f.Close()
}

func TestLoad(t *testing.T) {
	nnet.DataDir = t.TempDir()
	writeTestFiles(t, []byte{3, 1, 4, 1})
	s, err := Load("test")
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 4 {
		t.Fatalf("loaded %d images", s.Len())
	}
	if s.Labels[0] != 3 || s.Labels[2] != 4 {
		t.Errorf("labels = %v", s.Labels)
	}
	if got := s.Images[2].Pix[0]; got != 20.0/255 {
		t.Errorf("image 2 pixel 0 = %v", got)
	}
	if shape := s.Shape(); shape[0] != Size || shape[1] != Size || shape[2] != 1 {
		t.Errorf("shape = %v", shape)
	}
	buf := make([]float32, 2*Size*Size)
	s.Input([]int{1, 3}, buf)
	if buf[0] != 10.0/255 || buf[Size*Size] != 30.0/255 {
		t.Errorf("input batch = %v %v", buf[0], buf[Size*Size])
	}
	label := make([]int32, 2)
	s.Label([]int{0, 1}, label)
	if label[0] != 3 || label[1] != 1 {
		t.Errorf("label batch = %v", label)
	}
}

func TestLoadUnknown(t *testing.T) {
	nnet.DataDir = t.TempDir()
	if _, err := Load("valid"); !errors.Is(err, nnet.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestGetStats(t *testing.T) {
	nnet.DataDir = t.TempDir()
	writeTestFiles(t, []byte{0, 1})
	s, err := Load("test")
	if err != nil {
		t.Fatal(err)
	}
	mean, std := GetStats(s)
	if mean < 0.019 || mean > 0.021 {
		t.Errorf("mean = %v", mean)
	}
	if std < 0.019 || std > 0.021 {
		t.Errorf("stddev = %v", std)
	}
}
