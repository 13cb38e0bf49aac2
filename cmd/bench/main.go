package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "quill_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	service, err := quill.New(benchDir,
		quill.WithLogger(logger),
		quill.WithAutoInit(true),
		quill.WithDevSafety(false),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	// Every Create writes the whole collection through to disk, so this
	// measures the worst case of the write-through design: cost grows with
	// collection size.
	fmt.Printf("Creating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()
	for i := 0; i < *count; i++ {
		_, err := service.Create(ctx, core.Draft{
			Title:   fmt.Sprintf("Note %d", i),
			Content: fmt.Sprintf("Benchmark note %d, nothing to see here.", i),
			Tags:    []string{"benchmark"},
		})
		if err != nil {
			panic(err)
		}
	}
	genDuration := time.Since(startGen)
	fmt.Printf("Generation took: %v (%v/note)\n", genDuration, genDuration/time.Duration(*count))

	// Reads are served from memory once the collection is loaded.
	startList := time.Now()
	list, err := service.All(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Printf("All (warm): %v (Items: %d)\n", time.Since(startList), len(list))

	startSearch := time.Now()
	hits, err := service.Search(ctx, "nothing to see")
	if err != nil {
		panic(err)
	}
	fmt.Printf("Search (warm): %v (Hits: %d)\n", time.Since(startSearch), len(hits))

	// A fresh instance simulates a new CLI invocation: one full decode.
	service2, err := quill.New(benchDir,
		quill.WithLogger(logger),
		quill.WithDevSafety(false),
	)
	if err != nil {
		panic(err)
	}

	startCold := time.Now()
	list2, err := service2.All(ctx)
	if err != nil {
		panic(err)
	}
	coldDuration := time.Since(startCold)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	fmt.Printf("  Create total: %v\n", genDuration)
	fmt.Printf("  Reload+List (cold): %v (Items: %d)\n", coldDuration, len(list2))
	fmt.Printf("--------------------------------------------------\n")
}
