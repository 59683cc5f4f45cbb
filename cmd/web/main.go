package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jswu18/deepgen/nnet"
	"github.com/jswu18/deepgen/text"
	"github.com/jswu18/deepgen/textgen"
	"github.com/jswu18/deepgen/web"
)

func main() {
	log.SetFlags(0)
	conf := nnet.Config{
		Corpus:       "nietzsche",
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
	addr := flag.String("addr", ":8080", "listen address")
	flag.StringVar(&conf.Corpus, "corpus", conf.Corpus, "corpus name")
	flag.IntVar(&conf.MaxEpoch, "epochs", conf.MaxEpoch, "max epochs")
	flag.Int64Var(&conf.RandSeed, "seed", conf.RandSeed, "random number seed")
	flag.Parse()

	rng := nnet.SetSeed(conf.RandSeed)
	err := os.MkdirAll(nnet.DataDir, 0755)
	nnet.CheckErr(err)

	corpus, err := text.Fetch(conf.Corpus)
	nnet.CheckErr(err)
	vocab := text.NewVocab(corpus)
	windows, err := text.NewWindows(vocab, corpus, conf.SeqLen, conf.Step)
	nnet.CheckErr(err)

	dset := nnet.NewDataset(windows, conf.BatchSize, 0, rng)
	model := textgen.NewFreqModel(vocab.Size(), conf.Order)
	tester := nnet.NewTestBase(nil, conf.MaxEpoch, conf.MinLoss)
	nnet.Train(model, dset, tester)
	fmt.Printf("trained %d epochs, final loss %.4f\n", len(tester.Stats), tester.Stats[len(tester.Stats)-1].Loss)

	srv := web.NewServer(conf.Corpus, corpus, model, vocab, conf, tester.Stats, rng)
	fmt.Println("serving web page at http://localhost" + *addr)
	nnet.CheckErr(http.ListenAndServe(*addr, srv.Router()))
}
