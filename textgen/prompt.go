package textgen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jswu18/deepgen/nnet"
)

// Session runs the interactive text generation prompt on a line oriented
// input and output stream. Entering "exit" at either prompt ends the session;
// malformed input re-prompts.
type Session struct {
	In      io.Reader
	Out     io.Writer
	Sampler *Sampler
	Model   nnet.Predictor
	Temps   []float64
}

// Run the prompt loop until the exit sentinel or end of input.
func (s *Session) Run() error {
	sc := bufio.NewScanner(s.In)
	for {
		seed, ok := s.readSeed(sc)
		if !ok {
			return sc.Err()
		}
		n, ok := s.readCount(sc)
		if !ok {
			return sc.Err()
		}
		fmt.Fprintln(s.Out, "Generating text...")
		for _, temp := range s.Temps {
			out, err := s.Sampler.Generate(s.Model, seed, n, temp)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.Out, "----- temperature: %g\n%s\n", temp, out)
		}
	}
}

func (s *Session) readSeed(sc *bufio.Scanner) (string, bool) {
	for {
		fmt.Fprint(s.Out, "Please input seed: ")
		if !sc.Scan() {
			return "", false
		}
		line := sc.Text()
		if line == "exit" {
			fmt.Fprintln(s.Out, "Exiting...")
			return "", false
		}
		seed := strings.ToLower(line)
		if len([]rune(seed)) < s.Sampler.SeqLen {
			fmt.Fprintf(s.Out, "Please input a seed of at least %d characters\n", s.Sampler.SeqLen)
			continue
		}
		return seed, true
	}
}

func (s *Session) readCount(sc *bufio.Scanner) (int, bool) {
	for {
		fmt.Fprint(s.Out, "Please indicate the number of characters you wish to generate: ")
		if !sc.Scan() {
			return 0, false
		}
		line := sc.Text()
		if line == "exit" {
			fmt.Fprintln(s.Out, "Exiting...")
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.Out, "Please enter an integer")
			continue
		}
		if n <= 0 {
			fmt.Fprintln(s.Out, "Please enter a positive integer")
			continue
		}
		return n, true
	}
}
