// biocrayon - Colormaps for biological data
//
// biocrayon validates colormap collections and resolves colours for cell
// types, sequences and expression values.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/biocrayon/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
