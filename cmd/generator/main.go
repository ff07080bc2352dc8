package main

import (
	"log"

	"fraud-data-simulator/internal/bootstrap/simulator"
)

func main() {
	if err := simulator.RunGenerator(); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
}
