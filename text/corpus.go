// Package text provides the corpus registry, character vocabulary and
// training window extraction for the text generation pipeline.
package text

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/jswu18/deepgen/nnet"
)

// ErrUnknownCorpus is returned when a corpus name is not in the registry.
var ErrUnknownCorpus = errors.New("unknown corpus")

// Corpus is a named entry in the fixed table of text sources.
type Corpus struct {
	Name string
	File string
	URL  string
}

var corpora = []Corpus{
	{"nietzsche", "nietzsche.txt", "https://s3.amazonaws.com/text-datasets/nietzsche.txt"},
	{"shakespeare", "shakespeare.txt", "https://raw.githubusercontent.com/karpathy/char-rnn/master/data/tinyshakespeare/input.txt"},
}

// Lookup finds the corpus entry with the given name.
func Lookup(name string) (Corpus, error) {
	for _, c := range corpora {
		if c.Name == name {
			return c, nil
		}
	}
	return Corpus{}, fmt.Errorf("%w: %q", ErrUnknownCorpus, name)
}

// Corpora lists the registered corpus names.
func Corpora() []string {
	names := make([]string, len(corpora))
	for i, c := range corpora {
		names[i] = c.Name
	}
	return names
}

// Fetch returns the corpus text in lower case, downloading and caching the
// source file under DataDir on first use.
func Fetch(name string) (string, error) {
	c, err := Lookup(name)
	if err != nil {
		return "", err
	}
	filePath := path.Join(nnet.DataDir, c.File)
	if !nnet.FileExists(c.File) {
		if err = download(c.URL, filePath); err != nil {
			return "", err
		}
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	text := strings.ToLower(string(data))
	fmt.Printf("corpus %s: %d chars\n", name, len([]rune(text)))
	return text, nil
}

func download(url, filePath string) error {
	fmt.Println("downloading", url)
	if err := os.MkdirAll(path.Dir(filePath), 0755); err != nil {
		return err
	}
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("corpus: error fetching %s: %s", url, resp.Status)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}
