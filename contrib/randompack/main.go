// randompack - Random colormap pack generator
//
// Generates a community pack with one categorical and one continuous
// colormap. Categorical colours are spread apart with the same assignment
// used for fill-missing lookups, starting from a random seed colour. Useful
// for exercising community imports and plotting front ends.
//
// Usage:
//   go run ./contrib/randompack -n 8 > pack.json
//   go run ./contrib/randompack -n 12 --seed 12345 -o pack.json.xz
//
// Author: biocrayon Contributors
// License: MIT

package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
	"os"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/biocrayon/internal/loader"
	"github.com/jmylchreest/biocrayon/pkg/colormap"
	"github.com/jmylchreest/biocrayon/pkg/colour"
)

func main() {
	var (
		categories int
		stops      int
		seed       uint64
		name       string
		output     string
	)
	pflag.IntVarP(&categories, "categories", "n", 8, "number of categories")
	pflag.IntVar(&stops, "stops", 3, "number of continuous colour stops")
	pflag.Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	pflag.StringVar(&name, "name", "Random", "pack name")
	pflag.StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	pflag.Parse()

	if !pflag.CommandLine.Changed("seed") {
		// Generate a truly random seed from crypto/rand
		var randomBytes [8]byte
		if _, err := rand.Read(randomBytes[:]); err == nil {
			seed = binary.LittleEndian.Uint64(randomBytes[:])
		}
	}

	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	rng := mathrand.New(mathrand.NewChaCha8(seedArray))

	doc, err := generate(rng, name, seed, categories, stops)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c, err := colormap.New(doc, colormap.WithRequireMetadata(true))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: generated pack is invalid: %v\n", err)
		os.Exit(1)
	}

	if output != "" {
		err = loader.Save(output, c)
	} else {
		var data []byte
		if data, err = loader.Marshal(c); err == nil {
			_, err = os.Stdout.Write(data)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing pack: %v\n", err)
		os.Exit(1)
	}
}

// generate builds the raw pack document.
func generate(rng *mathrand.Rand, name string, seed uint64, categories, stops int) (*colormap.OrderedMap, error) {
	if categories < 1 {
		return nil, fmt.Errorf("categories must be at least 1, got %d", categories)
	}
	if stops < 2 {
		return nil, fmt.Errorf("stops must be at least 2, got %d", stops)
	}

	colors := colormap.NewOrderedMap()
	assigned := []string{randomColour(rng)}
	colors.Set("category_0", assigned[0])
	for i := 1; i < categories; i++ {
		hex := colormap.NextColor(assigned)
		assigned = append(assigned, hex)
		colors.Set(fmt.Sprintf("category_%d", i), hex)
	}

	categorical := colormap.NewOrderedMap()
	categorical.Set("type", string(colormap.KindCategorical))
	categorical.Set("description", fmt.Sprintf("%d random categories", categories))
	categorical.Set("colors", colors)

	gradient := make([]any, stops)
	for i := range gradient {
		gradient[i] = randomColour(rng)
	}
	continuous := colormap.NewOrderedMap()
	continuous.Set("type", string(colormap.KindContinuous))
	continuous.Set("description", fmt.Sprintf("%d random stops", stops))
	continuous.Set("colors", gradient)

	maps := colormap.NewOrderedMap()
	maps.Set("categories", categorical)
	maps.Set("gradient", continuous)

	metadata := colormap.NewOrderedMap()
	metadata.Set("name", name)
	metadata.Set("version", "1.0.0")
	metadata.Set("description", fmt.Sprintf("Random pack (seed %d)", seed))

	doc := colormap.NewOrderedMap()
	doc.Set("metadata", metadata)
	doc.Set("colormaps", maps)
	return doc, nil
}

func randomColour(rng *mathrand.Rand) string {
	return colour.RGB{
		R: uint8(rng.IntN(256)),
		G: uint8(rng.IntN(256)),
		B: uint8(rng.IntN(256)),
	}.Hex()
}
