package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jswu18/deepgen/mnist"
	"github.com/jswu18/deepgen/nnet"
	"github.com/jswu18/deepgen/pairs"
)

func main() {
	conf := nnet.Config{
		DataSet:   "mnist_pairs",
		Model:     "compare",
		TrainSize: 60000,
		TestSize:  18000,
		BatchSize: 100,
		MaxEpoch:  4,
		LogEvery:  1,
		RandSeed:  1,
	}
	flag.IntVar(&conf.TrainSize, "train", conf.TrainSize, "training pair set size")
	flag.IntVar(&conf.TestSize, "test", conf.TestSize, "test pair set size")
	flag.IntVar(&conf.BatchSize, "batch", conf.BatchSize, "batch size")
	flag.IntVar(&conf.MaxEpoch, "epochs", conf.MaxEpoch, "max epochs")
	flag.Int64Var(&conf.RandSeed, "seed", conf.RandSeed, "random number seed")
	flag.Parse()
	fmt.Println(conf)

	rng := nnet.SetSeed(conf.RandSeed)
	err := os.MkdirAll(nnet.DataDir, 0755)
	nnet.CheckErr(err)

	trainImg, err := mnist.Load("train")
	nnet.CheckErr(err)
	testImg, err := mnist.Load("test")
	nnet.CheckErr(err)
	mean, std := mnist.GetStats(trainImg, testImg)
	fmt.Printf("mean = %.2f stddev = %.2f\n", mean, std)

	train, err := pairs.SampleBalanced(rng, trainImg, conf.TrainSize)
	nnet.CheckErr(err)
	test, err := pairs.SampleBalanced(rng, testImg, conf.TestSize)
	nnet.CheckErr(err)
	fmt.Printf("train: %d pairs (%d match)  test: %d pairs (%d match)\n",
		train.Len(), train.Matches(), test.Len(), test.Matches())

	err = nnet.SaveDataFile(train, conf.DataSet+"_train")
	nnet.CheckErr(err)
	err = nnet.SaveDataFile(test, conf.DataSet+"_test")
	nnet.CheckErr(err)

	trainData := nnet.NewDataset(train, conf.BatchSize, 0, rng)
	testData := nnet.NewDataset(test, conf.BatchSize, 0, rng)
	model := pairs.NewComparator()
	nnet.Train(model, trainData, nnet.NewTestLogger(testData, conf.MaxEpoch, conf.MinLoss, conf.LogEvery))
	fmt.Printf("threshold = %.3f  test error = %.2f%%\n", model.Threshold, 100*testData.Error(model, nil))

	err = nnet.SaveModel(model, conf.Model)
	nnet.CheckErr(err)
}
