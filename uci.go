package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kz4killua/chess-ai/config"
	"github.com/kz4killua/chess-ai/engine"
	"github.com/kz4killua/chess-ai/position"
)

const defaultDepth = 2

func main() {
	config.SetupLogging(config.LogConfig{Style: "console", Level: os.Getenv("LOG_LEVEL")}, os.Stderr)
	uciLoop(os.Stdin, os.Stdout)
}

// uciSession is the state carried between UCI commands. board is nil after a
// position command that could not be set up.
type uciSession struct {
	out   io.Writer
	board *position.Board
	depth int
}

func uciLoop(in io.Reader, out io.Writer) {
	s := &uciSession{out: out, board: position.New(), depth: defaultDepth}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name chess-ai")
			fmt.Fprintln(out, "id author kz4killua")
			fmt.Fprintf(out, "option name Depth type spin default %d min 0 max 8\n", defaultDepth)
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			s.board = position.New()
		case "quit":
			return
		case "stop":
			// Searches run to completion before the next command is read.
		case "position":
			s.position(tokens[1:])
		case "go":
			s.goSearch(tokens[1:])
		case "eval":
			if s.requireBoard() {
				fmt.Fprintf(out, "info string eval %d\n", engine.MaterialEvaluation(s.board))
			}
		case "d":
			if !s.requireBoard() {
				continue
			}
			fmt.Fprint(out, s.board.String())
			fmt.Fprintf(out, "Fen: %s\n", s.board.FEN())
			fmt.Fprintf(out, "Status: %s\n", s.board.Status(true))
		case "setoption":
			s.setOption(tokens[1:])
		default:
			fmt.Fprintln(out, "info string Unknown command:", line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("reading-input")
	}
}

// position handles "position [startpos | fen <fen>] [moves <m1> ...]". On any
// error the session is left without a position.
func (s *uciSession) position(args []string) {
	s.board = nil
	if len(args) == 0 {
		fmt.Fprintln(s.out, "info string Malformed position command")
		return
	}

	var (
		board *position.Board
		rest  []string
	)
	switch strings.ToLower(args[0]) {
	case "startpos":
		board = position.New()
		rest = args[1:]
	case "fen":
		i := 1
		for i < len(args) && strings.ToLower(args[i]) != "moves" {
			i++
		}
		b, err := position.FromFEN(strings.Join(args[1:i], " "))
		if err != nil {
			fmt.Fprintln(s.out, "info string Invalid fen position:", err)
			return
		}
		board = b
		rest = args[i:]
	default:
		fmt.Fprintln(s.out, "info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, mv := range rest[1:] {
			if err := board.Push(mv); err != nil {
				fmt.Fprintln(s.out, "info string Move", mv, "not found for position", board.FEN())
				return
			}
		}
	}
	s.board = board
}

// goSearch handles "go [depth N]". Clock arguments are accepted and ignored.
func (s *uciSession) goSearch(args []string) {
	if !s.requireBoard() {
		fmt.Fprintln(s.out, "bestmove (none)")
		return
	}
	depth := s.depth
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				fmt.Fprintln(s.out, "info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil || d < 0 {
				fmt.Fprintln(s.out, "info string Malformed go command option; could not convert depth")
				continue
			}
			depth = d
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime":
			i++
		case "infinite":
		default:
			fmt.Fprintln(s.out, "info string Unknown go subcommand", args[i])
		}
	}

	eng := engine.New()
	start := time.Now()
	move, score, err := eng.RecommendMove(s.board, depth)
	if err != nil {
		log.Error().Err(err).Str("fen", s.board.FEN()).Msg("search-failed")
		fmt.Fprintln(s.out, "bestmove (none)")
		return
	}
	stats := eng.Stats()
	fmt.Fprintf(s.out, "info depth %d score cp %d nodes %d time %d\n",
		depth, uciScore(score, s.board.WhiteToMove()), stats.Nodes, time.Since(start).Milliseconds())

	if move == engine.NoMove {
		// Depth 0 or a finished game; fall back to any legal move.
		legal := s.board.LegalMoves()
		if len(legal) == 0 {
			fmt.Fprintln(s.out, "bestmove (none)")
			return
		}
		move = legal[0]
	}
	fmt.Fprintln(s.out, "bestmove", move.String())
}

func (s *uciSession) requireBoard() bool {
	if s.board == nil {
		fmt.Fprintln(s.out, "info string No valid position set")
		return false
	}
	return true
}

func (s *uciSession) setOption(args []string) {
	// setoption name <id> value <x>
	if len(args) != 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		fmt.Fprintln(s.out, "info string Malformed setoption command")
		return
	}
	switch strings.ToLower(args[1]) {
	case "depth":
		d, err := strconv.Atoi(args[3])
		if err != nil || d < 0 {
			fmt.Fprintln(s.out, "info string Invalid depth", args[3])
			return
		}
		s.depth = d
	default:
		fmt.Fprintln(s.out, "info string Unknown option", args[1])
	}
}

// uciScore converts a White-relative evaluation to the side-to-move view
// UCI expects.
func uciScore(score int, whiteToMove bool) int {
	if whiteToMove {
		return score
	}
	return -score
}
