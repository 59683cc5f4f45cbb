package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jswu18/deepgen/nnet"
	"github.com/jswu18/deepgen/text"
	"github.com/jswu18/deepgen/textgen"
)

func main() {
	conf := nnet.Config{
		Corpus:       "nietzsche",
		Model:        "nietzsche",
		SeqLen:       40,
		Step:         3,
		Order:        5,
		BatchSize:    128,
		MaxEpoch:     3,
		GenChars:     400,
		LogEvery:     1,
		RandSeed:     1,
		Temperatures: []float64{0.2, 0.5, 1.0, 1.2},
	}
	load := flag.Bool("load", false, "load a previously saved model instead of training")
	flag.StringVar(&conf.Corpus, "corpus", conf.Corpus, "corpus name")
	flag.IntVar(&conf.SeqLen, "seqlen", conf.SeqLen, "window length in characters")
	flag.IntVar(&conf.Step, "step", conf.Step, "window step")
	flag.IntVar(&conf.Order, "order", conf.Order, "model context length")
	flag.IntVar(&conf.MaxEpoch, "epochs", conf.MaxEpoch, "max epochs")
	flag.IntVar(&conf.GenChars, "chars", conf.GenChars, "chars to generate after training")
	flag.Int64Var(&conf.RandSeed, "seed", conf.RandSeed, "random number seed")
	flag.Parse()
	conf.Model = conf.Corpus
	fmt.Println(conf)

	rng := nnet.SetSeed(conf.RandSeed)
	err := os.MkdirAll(nnet.DataDir, 0755)
	nnet.CheckErr(err)

	corpus, err := text.Fetch(conf.Corpus)
	nnet.CheckErr(err)
	vocab := text.NewVocab(corpus)
	fmt.Printf("vocabulary: %d chars\n", vocab.Size())

	var model nnet.Predictor
	if *load {
		model, err = nnet.LoadModel(conf.Model)
		nnet.CheckErr(err)
	} else {
		windows, err := text.NewWindows(vocab, corpus, conf.SeqLen, conf.Step)
		nnet.CheckErr(err)
		dset := nnet.NewDataset(windows, conf.BatchSize, 0, rng)
		m := textgen.NewFreqModel(vocab.Size(), conf.Order)
		nnet.Train(m, dset, nnet.NewTestLogger(nil, conf.MaxEpoch, conf.MinLoss, conf.LogEvery))
		err = nnet.SaveModel(m, conf.Model)
		nnet.CheckErr(err)
		model = m
	}

	smp := &textgen.Sampler{Vocab: vocab, SeqLen: conf.SeqLen, Rng: rng}

	// sample a seed from the corpus and show some generated text
	runes := []rune(corpus)
	start := rng.Intn(len(runes) - conf.SeqLen)
	seed := string(runes[start : start+conf.SeqLen])
	fmt.Printf("----- generating with seed: %q\n", seed)
	for _, temp := range conf.Temperatures {
		out, err := smp.Generate(model, seed, conf.GenChars, temp)
		nnet.CheckErr(err)
		fmt.Printf("----- temperature: %g\n%s\n", temp, out)
	}

	session := &textgen.Session{In: os.Stdin, Out: os.Stdout, Sampler: smp, Model: model, Temps: conf.Temperatures}
	nnet.CheckErr(session.Run())
}
