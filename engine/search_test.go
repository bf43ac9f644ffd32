package engine_test

import (
	"errors"
	"testing"

	"github.com/kz4killua/chess-ai/engine"
	"github.com/kz4killua/chess-ai/position"
)

const (
	mateInOne   = "8/8/7k/8/8/8/5R2/6R1 w - - 0 1"   // f2h2
	mateInTwo   = "8/6k1/8/8/8/8/1K2R3/5R2 w - - 0 1" // e2g2
	mateInThree = "8/8/5k2/8/8/8/3R4/4R3 w - - 0 1"   // d2f2
	foolsMate   = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	kiwipete    = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)

var samplePositions = []string{
	position.StartFEN,
	kiwipete,
	mateInOne,
	mateInTwo,
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 2 3",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"4k3/8/8/3q4/8/8/3Q4/4K3 b - - 0 1",
}

func mustFEN(t testing.TB, fen string) *position.Board {
	t.Helper()
	b, err := position.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

// countingBoard records how many moves the search applies.
type countingBoard struct {
	*position.Board
	applies int
}

func (c *countingBoard) Apply(m position.Move) {
	c.applies++
	c.Board.Apply(m)
}

func TestRecommendMove_MateInOne(t *testing.T) {
	b := mustFEN(t, mateInOne)
	move, score, err := engine.New().RecommendMove(b, 2)
	if err != nil {
		t.Fatalf("RecommendMove: %v", err)
	}
	if got := move.String(); got != "f2h2" {
		t.Fatalf("best move: got %s want f2h2", got)
	}
	if score != engine.WinScore {
		t.Fatalf("score: got %d want %d", score, engine.WinScore)
	}
}

func TestRecommendMove_MateInTwoFindsWin(t *testing.T) {
	b := mustFEN(t, mateInTwo)
	_, score, err := engine.New().RecommendMove(b, 4)
	if err != nil {
		t.Fatalf("RecommendMove: %v", err)
	}
	if score != engine.WinScore {
		t.Fatalf("score: got %d want %d", score, engine.WinScore)
	}
}

func TestRecommendMove_BlackMinimizes(t *testing.T) {
	// Black can at best trade queens; no move wins material within two plies.
	b := mustFEN(t, "4k3/8/8/3q4/8/8/3Q4/4K3 b - - 0 1")
	_, score, err := engine.New().RecommendMove(b, 2)
	if err != nil {
		t.Fatalf("RecommendMove: %v", err)
	}
	if score != 0 {
		t.Fatalf("score: got %d want 0", score)
	}
}

func TestRecommendMove_DepthZero(t *testing.T) {
	for _, fen := range samplePositions {
		b := mustFEN(t, fen)
		e := engine.New()
		move, score, err := e.RecommendMove(b, 0)
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		if move != engine.NoMove {
			t.Fatalf("%s: expected NoMove at depth 0, got %s", fen, move.String())
		}
		if want := engine.MaterialEvaluation(b); score != want {
			t.Fatalf("%s: score %d, evaluator says %d", fen, score, want)
		}
		if e.Stats().Nodes != 1 {
			t.Fatalf("%s: depth 0 visited %d nodes", fen, e.Stats().Nodes)
		}
	}
}

func TestRecommendMove_TerminalShortCircuit(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"checkmate", foolsMate, -engine.WinScore},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 0},
		{"fifty move claim", "8/8/4k3/8/8/4K3/8/R7 w - - 100 80", 0},
		{"fifty move claim by next move", "8/8/4k3/8/8/4K3/8/R7 w - - 99 80", 0},
		{"insufficient material", "8/8/4k3/8/8/4K3/8/6N1 w - - 0 1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &countingBoard{Board: mustFEN(t, tt.fen)}
			for depth := 0; depth <= 4; depth++ {
				move, score, err := engine.New().RecommendMove(b, depth)
				if err != nil {
					t.Fatalf("depth %d: %v", depth, err)
				}
				if move != engine.NoMove || score != tt.want {
					t.Fatalf("depth %d: got (%s, %d), want (NoMove, %d)", depth, move.String(), score, tt.want)
				}
			}
			if b.applies != 0 {
				t.Fatalf("terminal position explored %d children", b.applies)
			}
		})
	}
}

func TestRecommendMove_ThreefoldIsDraw(t *testing.T) {
	b := position.New()
	for i := 0; i < 2; i++ {
		for _, mv := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			if err := b.Push(mv); err != nil {
				t.Fatal(err)
			}
		}
	}
	move, score, err := engine.New().RecommendMove(b, 3)
	if err != nil || move != engine.NoMove || score != 0 {
		t.Fatalf("got (%s, %d, %v), want (NoMove, 0, nil)", move.String(), score, err)
	}
}

func TestRecommendMove_ThreefoldClaimableByNextMoveIsDraw(t *testing.T) {
	b := position.New()
	for _, mv := range []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1"} {
		if err := b.Push(mv); err != nil {
			t.Fatal(err)
		}
	}
	e := engine.New()
	move, score, err := e.RecommendMove(b, 3)
	if err != nil || move != engine.NoMove || score != 0 {
		t.Fatalf("got (%s, %d, %v), want (NoMove, 0, nil)", move.String(), score, err)
	}
	if e.Stats().Nodes != 1 || b.Ply() != 7 {
		t.Fatalf("claimable draw should end the search at the root: %v, ply %d", e.Stats(), b.Ply())
	}
}

func TestRecommendMove_RestoresPosition(t *testing.T) {
	for _, fen := range samplePositions {
		for depth := 0; depth <= 3; depth++ {
			for _, exhaustive := range []bool{false, true} {
				b := mustFEN(t, fen)
				beforeFEN, beforeHash := b.FEN(), b.Hash()

				var opts []engine.Option
				if exhaustive {
					opts = append(opts, engine.WithoutPruning())
				}
				if _, _, err := engine.New(opts...).RecommendMove(b, depth); err != nil {
					t.Fatalf("%s depth %d: %v", fen, depth, err)
				}

				if b.FEN() != beforeFEN || b.Hash() != beforeHash || b.Ply() != 0 {
					t.Fatalf("%s depth %d exhaustive=%v: position changed to %q (ply %d)",
						fen, depth, exhaustive, b.FEN(), b.Ply())
				}
			}
		}
	}
}

func TestRecommendMove_PruningMatchesExhaustive(t *testing.T) {
	for _, fen := range samplePositions {
		maxDepth := 3
		if fen == mateInOne || fen == mateInTwo {
			maxDepth = 4
		}
		for depth := 1; depth <= maxDepth; depth++ {
			pruned := engine.New()
			full := engine.New(engine.WithoutPruning())

			pm, ps, err := pruned.RecommendMove(mustFEN(t, fen), depth)
			if err != nil {
				t.Fatalf("pruned %s depth %d: %v", fen, depth, err)
			}
			fm, fs, err := full.RecommendMove(mustFEN(t, fen), depth)
			if err != nil {
				t.Fatalf("exhaustive %s depth %d: %v", fen, depth, err)
			}

			if ps != fs {
				t.Fatalf("%s depth %d: pruned score %d, exhaustive %d", fen, depth, ps, fs)
			}
			// Strict improvement keeps the first optimal root move in both.
			if pm != fm {
				t.Fatalf("%s depth %d: pruned move %s, exhaustive %s", fen, depth, pm.String(), fm.String())
			}
			if pruned.Stats().Nodes > full.Stats().Nodes {
				t.Fatalf("%s depth %d: pruning visited more nodes (%d > %d)",
					fen, depth, pruned.Stats().Nodes, full.Stats().Nodes)
			}
		}
	}
}

func TestRecommendMove_PruningSavesWork(t *testing.T) {
	pruned := engine.New()
	full := engine.New(engine.WithoutPruning())
	if _, _, err := pruned.RecommendMove(position.New(), 3); err != nil {
		t.Fatal(err)
	}
	if _, _, err := full.RecommendMove(position.New(), 3); err != nil {
		t.Fatal(err)
	}
	if full.Stats().Nodes != 1+20+400+8902 {
		t.Fatalf("exhaustive nodes: got %d want %d", full.Stats().Nodes, 1+20+400+8902)
	}
	if pruned.Stats().Cutoffs == 0 || pruned.Stats().Nodes >= full.Stats().Nodes {
		t.Fatalf("expected pruning to cut the tree, got %v vs %v", pruned.Stats(), full.Stats())
	}
}

func TestRecommendMove_Deterministic(t *testing.T) {
	first, firstScore, err := engine.New().RecommendMove(mustFEN(t, kiwipete), 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		move, score, err := engine.New().RecommendMove(mustFEN(t, kiwipete), 2)
		if err != nil {
			t.Fatal(err)
		}
		if move != first || score != firstScore {
			t.Fatalf("run %d: got (%s, %d), first run (%s, %d)", i, move.String(), score, first.String(), firstScore)
		}
	}
}

func TestRecommendMove_InvalidDepth(t *testing.T) {
	if _, _, err := engine.New().RecommendMove(position.New(), -1); !errors.Is(err, engine.ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
}

var errBrokenEvaluator = errors.New("broken evaluator")

func TestRecommendMove_EvaluatorPanicRestoresPosition(t *testing.T) {
	calls := 0
	eval := engine.EvaluatorFunc(func(pos engine.Position) int {
		calls++
		if calls == 50 {
			panic(errBrokenEvaluator)
		}
		return engine.MaterialEvaluation(pos)
	})

	b := mustFEN(t, kiwipete)
	before := b.FEN()
	move, _, err := engine.New(engine.WithEvaluator(eval)).RecommendMove(b, 3)

	var evalErr *engine.EvaluatorError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluatorError, got %v", err)
	}
	if !errors.Is(err, errBrokenEvaluator) {
		t.Fatalf("expected the panic value to be unwrapped, got %v", err)
	}
	if move != engine.NoMove {
		t.Fatalf("expected NoMove after an aborted search, got %s", move.String())
	}
	if b.FEN() != before || b.Ply() != 0 {
		t.Fatalf("position not restored: %q (ply %d)", b.FEN(), b.Ply())
	}
}

func TestRecommendMove_CustomEvaluator(t *testing.T) {
	constant := engine.EvaluatorFunc(func(engine.Position) int { return 7 })
	for depth := 0; depth <= 2; depth++ {
		_, score, err := engine.New(engine.WithEvaluator(constant)).RecommendMove(position.New(), depth)
		if err != nil {
			t.Fatal(err)
		}
		if score != 7 {
			t.Fatalf("depth %d: got %d want 7", depth, score)
		}
	}
}

func BenchmarkRecommendMove_Startpos_D3(b *testing.B) {
	board := position.New()
	e := engine.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = e.RecommendMove(board, 3)
	}
}

func BenchmarkRecommendMove_MateInThree_D5(b *testing.B) {
	board := mustFEN(b, mateInThree)
	e := engine.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = e.RecommendMove(board, 5)
	}
}
