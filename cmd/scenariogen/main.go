package main

import (
	"flag"
	"fmt"
	"os"

	"wxsim/cmd/scenariogen/engine"
)

func main() {
	preset := flag.String("preset", "calm", "Preset to generate: calm, stormy, degenerate")
	outDir := flag.String("out", ".", "Output directory for scenario files")
	flag.Parse()

	fmt.Printf("Generating preset '%s' to %s...\n", *preset, *outDir)

	sc, err := engine.Generate(*preset)
	if err != nil {
		fmt.Printf("Failed to generate scenario: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Save(*outDir, *preset, sc); err != nil {
		fmt.Printf("Failed to save scenario: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
