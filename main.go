package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"muviz/cmd"
	"muviz/config"
	"muviz/services"
)

func main() {
	var workers int
	flag.IntVar(&workers, "workers", services.DefaultWorkers(), "Number of worker goroutines")
	flag.IntVar(&workers, "w", services.DefaultWorkers(), "Number of worker goroutines (shorthand)")
	flag.Parse()

	root := flag.Arg(0)
	if root == "" {
		root = config.GetLibraryRoot(".")
	}

	start := time.Now()

	scanner := services.NewScanner(workers)
	records := scanner.Scan(root)
	stats := services.Analyze(records)

	outputDir := config.GetOutputDir()
	if err := services.WriteOutputs(outputDir, records, stats); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	log.Printf("Scan and analysis complete in %s", time.Since(start).Round(time.Millisecond))
	log.Printf("Wrote stats to %s", filepath.Join(outputDir, "stats.json"))

	store := services.NewStatsStore()
	store.Set(records, stats)

	port := config.GetServerPort()
	webRoot := config.GetWebRoot()
	log.Printf("Starting HTTP server at http://localhost:%d serving %s (press Ctrl-C to stop)", port, webRoot)
	cmd.StartWebServer(port, webRoot, outputDir, root, store, workers)
}
