package main

import (
	"bytes"
	"strings"
	"testing"
)

func runUCI(t *testing.T, input string) []string {
	t.Helper()
	var out bytes.Buffer
	uciLoop(strings.NewReader(input), &out)
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func lastLine(lines []string) string {
	return lines[len(lines)-1]
}

func TestUCIHandshake(t *testing.T) {
	lines := runUCI(t, "uci\nisready\nquit\n")
	if lines[len(lines)-2] != "uciok" || lastLine(lines) != "readyok" {
		t.Fatalf("unexpected handshake: %q", lines)
	}
}

func TestUCIFindsMateInOne(t *testing.T) {
	lines := runUCI(t, "position fen 8/8/7k/8/8/8/5R2/6R1 w - - 0 1\ngo depth 2\n")
	if got := lastLine(lines); got != "bestmove f2h2" {
		t.Fatalf("got %q want bestmove f2h2", got)
	}
	if !strings.HasPrefix(lines[0], "info depth 2 score cp 1000000 ") {
		t.Fatalf("info line: %q", lines[0])
	}
}

func TestUCIPositionWithMoves(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e4 e7e5\nd\n")
	var fen string
	for _, l := range lines {
		if strings.HasPrefix(l, "Fen: ") {
			fen = strings.TrimPrefix(l, "Fen: ")
		}
	}
	if !strings.HasPrefix(fen, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq") {
		t.Fatalf("fen after moves: %q", fen)
	}
}

func TestUCIIllegalMoveClearsPosition(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e5\ngo depth 1\n")
	if !strings.HasPrefix(lines[0], "info string Move e2e5 not found") {
		t.Fatalf("expected illegal move report, got %q", lines[0])
	}
	if got := lastLine(lines); got != "bestmove (none)" {
		t.Fatalf("searched a stale position: got %q", got)
	}
}

func TestUCIInvalidFENClearsPosition(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e4\nposition fen 8/8/8 w - - 0 1\ngo depth 1\neval\n")
	if !strings.HasPrefix(lines[0], "info string Invalid fen position") {
		t.Fatalf("expected invalid fen report, got %q", lines[0])
	}
	for _, l := range lines {
		if strings.HasPrefix(l, "bestmove ") && l != "bestmove (none)" {
			t.Fatalf("searched a stale position: %q", l)
		}
	}
	if got := lastLine(lines); got != "info string No valid position set" {
		t.Fatalf("eval without a position: got %q", got)
	}

	lines = runUCI(t, "position fen 8/8/8 w - - 0 1\nucinewgame\neval\n")
	if got := lastLine(lines); got != "info string eval 0" {
		t.Fatalf("ucinewgame should restore the initial position, got %q", got)
	}
}

func TestUCIStopIsSilent(t *testing.T) {
	lines := runUCI(t, "stop\nisready\n")
	if len(lines) != 1 || lines[0] != "readyok" {
		t.Fatalf("unexpected output: %q", lines)
	}
}

func TestUCIBlackScoreIsSideRelative(t *testing.T) {
	// Black to move, a queen up.
	lines := runUCI(t, "position fen 4k3/8/8/3q4/8/8/8/4K3 b - - 0 1\nsetoption name Depth value 1\ngo\n")
	if !strings.HasPrefix(lines[0], "info depth 1 score cp 900 ") {
		t.Fatalf("info line: %q", lines[0])
	}
}

func TestUCIFinishedGame(t *testing.T) {
	lines := runUCI(t, "position fen rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3\ngo depth 2\n")
	if got := lastLine(lines); got != "bestmove (none)" {
		t.Fatalf("got %q", got)
	}
}
