package mnist

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/jswu18/deepgen/nnet"
	"github.com/jswu18/deepgen/stats"
)

const baseURL = "https://storage.googleapis.com/cvdf-datasets/mnist/"

const (
	imageMagic = 2051
	labelMagic = 2049
)

var classes = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// fixed table of source files per data set name
var sources = []struct {
	name   string
	images string
	labels string
}{
	{"train", "train-images-idx3-ubyte.gz", "train-labels-idx1-ubyte.gz"},
	{"test", "t10k-images-idx3-ubyte.gz", "t10k-labels-idx1-ubyte.gz"},
}

type imageHeader struct{ Magic, Num, Height, Width uint32 }

type labelHeader struct{ Magic, Num uint32 }

// Set holds a labeled collection of digit images and implements the nnet.Data
// interface.
type Set struct {
	Images []*Image
	Labels []int32
	Class  []string
}

func (s *Set) Len() int { return len(s.Labels) }

func (s *Set) Classes() []string { return s.Class }

func (s *Set) Shape() []int { return []int{Size, Size, 1} }

func (s *Set) Label(index []int, label []int32) {
	for i, ix := range index {
		label[i] = s.Labels[ix]
	}
}

func (s *Set) Input(index []int, buf []float32) {
	for i, ix := range index {
		copy(buf[i*Size*Size:], s.Images[ix].Pix)
	}
}

// Image returns the given image number
func (s *Set) Image(i int) *Image { return s.Images[i] }

// Load the named data set, either "train" or "test", downloading the source
// files on first use.
func Load(name string) (*Set, error) {
	for _, src := range sources {
		if src.name == name {
			images, err := readImages(src.images)
			if err != nil {
				return nil, err
			}
			labels, err := readLabels(src.labels)
			if err != nil {
				return nil, err
			}
			if len(images) != len(labels) {
				return nil, fmt.Errorf("mnist: %s has %d images but %d labels", name, len(images), len(labels))
			}
			return &Set{Images: images, Labels: labels, Class: classes}, nil
		}
	}
	return nil, fmt.Errorf("%w: no mnist data set %q", nnet.ErrInvalidArgument, name)
}

// Calculate mean and stddev of the pixel intensities over the given sets.
func GetStats(sets ...*Set) (mean, std float32) {
	s := new(stats.Average)
	for _, set := range sets {
		for _, img := range set.Images {
			for _, val := range img.Pix {
				s.Add(float64(val))
			}
		}
	}
	return float32(s.Mean), float32(s.StdDev)
}

// fetch the named source file to DataDir/mnist and return a reader for the
// uncompressed content
func fetch(name string) (io.ReadCloser, error) {
	dir := path.Join(nnet.DataDir, "mnist")
	filePath := path.Join(dir, name)
	if _, err := os.Stat(filePath); err != nil {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		if err = download(baseURL+name, filePath); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(name, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zipReader{ReadCloser: zr, file: f}, nil
	}
	return f, nil
}

type zipReader struct {
	io.ReadCloser
	file *os.File
}

func (r *zipReader) Close() error {
	r.ReadCloser.Close()
	return r.file.Close()
}

func download(url, filePath string) error {
	fmt.Println("downloading", url)
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mnist: error fetching %s: %s", url, resp.Status)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}

func readImages(name string) (images []*Image, err error) {
	r, err := fetch(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var head imageHeader
	if err = binary.Read(r, binary.BigEndian, &head); err != nil {
		return nil, err
	}
	if head.Magic != imageMagic {
		return nil, fmt.Errorf("mnist: %s: invalid magic number %d", name, head.Magic)
	}
	n, h, w := int(head.Num), int(head.Height), int(head.Width)
	if h != Size || w != Size {
		return nil, fmt.Errorf("mnist: %s: expecting %dx%d images, got %dx%d", name, Size, Size, h, w)
	}
	fmt.Printf("read %d %dx%d images from %s\n", n, h, w, name)
	images = make([]*Image, n)
	pixels := make([]uint8, w*h)
	for i := range images {
		if _, err = io.ReadFull(r, pixels); err != nil {
			return nil, err
		}
		img := NewImage()
		for j, pix := range pixels {
			img.Pix[j] = float32(pix) / 255
		}
		images[i] = img
	}
	return images, nil
}

func readLabels(name string) (labels []int32, err error) {
	r, err := fetch(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var head labelHeader
	if err = binary.Read(r, binary.BigEndian, &head); err != nil {
		return nil, err
	}
	if head.Magic != labelMagic {
		return nil, fmt.Errorf("mnist: %s: invalid magic number %d", name, head.Magic)
	}
	fmt.Printf("read %d labels from %s\n", head.Num, name)
	bytes := make([]byte, head.Num)
	if _, err = io.ReadFull(r, bytes); err != nil {
		return nil, err
	}
	labels = make([]int32, head.Num)
	for i, label := range bytes {
		labels[i] = int32(label)
	}
	return labels, nil
}
