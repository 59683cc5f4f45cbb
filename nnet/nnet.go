// Package nnet contains the model contract, dataset batching and training
// glue shared by the digit pair and text generation pipelines.
package nnet

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// ErrInvalidArgument is returned for requests which can never succeed, such as
// sampling pairs from an empty source or generating text from too short a seed.
var ErrInvalidArgument = errors.New("invalid argument")

// Set random number seed, or random seed if seed <= 0.
// Returns a new generator owned by the caller.
func SetSeed(seed int64) *rand.Rand {
	if seed <= 0 {
		seed = time.Now().UTC().UnixNano()
	}
	fmt.Println("random seed =", seed)
	return rand.New(rand.NewSource(seed))
}

// Exit in case of error
func CheckErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Product of elements in the shape array
func Prod(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
