// Command perft runs the move-generation correctness harness over a
// position, optionally split by root move and cached on disk.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mkarren/chesskit/internal/logging"
	"github.com/mkarren/chesskit/internal/storage"
	"github.com/mkarren/chesskit/pkg/board"
)

var out = message.NewPrinter(language.English)

func main() {
	fen := flag.String("fen", board.StartFEN, "position to count from, in FEN")
	depth := flag.Int("depth", 5, "perft depth")
	divide := flag.Bool("divide", false, "print per-root-move subtotals")
	cacheDir := flag.String("cache", "", "directory for the result cache (disabled when empty)")
	flag.Parse()

	log := logging.GetLog()

	p, err := board.ParseFEN(*fen)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	var store *storage.Store
	if *cacheDir != "" {
		store, err = storage.Open(*cacheDir)
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		defer store.Close()

		if res, ok, err := store.PerftNodes(p.ZobristKey(), *depth); err != nil {
			log.Warningf("cache lookup failed: %v", err)
		} else if ok {
			out.Printf("perft(%d) = %d (cached %s)\n", res.Depth, res.Nodes, res.ComputedAt.Format(time.RFC3339))
			return
		}
	}

	start := time.Now()
	var nodes uint64

	if *divide {
		var ml board.MoveList
		p.LegalMoves(&ml)

		bar := progressbar.Default(int64(ml.Len()), "perft")
		for i := 0; i < ml.Len(); i++ {
			m := ml.Get(i)
			undo := p.MakeMove(m)
			n := board.Perft(p, *depth-1)
			p.UnmakeMove(m, undo)

			nodes += n
			_ = bar.Add(1)
			out.Printf("%s: %d\n", m, n)
		}
	} else {
		nodes = board.Perft(p, *depth)
	}

	elapsed := time.Since(start)
	out.Printf("perft(%d) = %d in %s (%.0f nodes/s)\n",
		*depth, nodes, elapsed.Round(time.Millisecond), float64(nodes)/elapsed.Seconds())

	if store != nil {
		err := store.PutPerft(p.ZobristKey(), storage.PerftResult{
			FEN:   p.FEN(),
			Depth: *depth,
			Nodes: nodes,
		})
		if err != nil {
			log.Warningf("cache store failed: %v", err)
		}
	}
}
