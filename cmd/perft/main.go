package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/exp/maps"

	"github.com/kz4killua/chess-ai/position"
)

func main() {
	fen := flag.String("fen", position.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := position.FromFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FromFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := board.PerftDivide(*depth)
		names := make(map[string]uint64, len(div))
		for m, n := range div {
			names[m.String()] = n
		}
		keys := maps.Keys(names)
		sort.Strings(keys)
		var sum uint64
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, names[k])
			sum += names[k]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += board.Perft(*depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}
