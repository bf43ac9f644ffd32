package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/kz4killua/chess-ai/position"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// WinScore is the evaluation of a won game for White; -WinScore is a win
	// for Black. It dominates any material sum.
	WinScore  = 1_000_000
	DrawScore = 0
	// Infinity bounds the initial search window, well beyond WinScore.
	Infinity = 10 * WinScore
)

// NoMove is returned when no move was searched (depth 0 or a terminal position).
const NoMove position.Move = 0

var (
	// ErrNoLegalMoves means the position has no legal moves but was not
	// reported as game over. The collaborator broke its contract.
	ErrNoLegalMoves = errors.New("engine: no legal moves in a position that is not game over")
	ErrInvalidDepth = errors.New("engine: search depth must not be negative")
)

// EvaluatorError reports a search aborted by a panic, normally raised by a
// custom evaluator. The position has been restored when it is returned.
type EvaluatorError struct {
	Value any
}

func (e *EvaluatorError) Error() string {
	return fmt.Sprintf("engine: search aborted: %v", e.Value)
}

// Unwrap returns the panic value when it was an error.
func (e *EvaluatorError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// RecommendMove searches depth plies with the widest window, maximizing for
// White when White is to move. It returns NoMove when depth is 0 or the
// position is already over. pos is left exactly as it was passed in.
func (e *Engine) RecommendMove(pos Position, depth int) (move position.Move, score int, err error) {
	if depth < 0 {
		return NoMove, 0, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	e.stats = Stats{}
	e.applied = 0
	start := time.Now()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		for ; e.applied > 0; e.applied-- {
			pos.Undo()
		}
		move, score, err = NoMove, 0, &EvaluatorError{Value: r}
		e.logger.Error().Err(err).Int("depth", depth).Msg("search-aborted")
	}()

	move, score, err = e.Minimax(pos, depth, -Infinity, Infinity, pos.WhiteToMove())
	if err != nil {
		e.logger.Error().Err(err).Int("depth", depth).Msg("search-failed")
		return NoMove, 0, err
	}

	e.logger.Debug().
		Int("depth", depth).
		Uint64("nodes", e.stats.Nodes).
		Uint64("leaves", e.stats.Leaves).
		Uint64("cutoffs", e.stats.Cutoffs).
		Dur("elapsed", time.Since(start)).
		Str("move", move.String()).
		Int("score", score).
		Msg("search-complete")
	return move, score, nil
}

// Minimax returns the best move and its value for the side to move, searched
// depth plies deep inside the (alpha, beta) window. Moves are tried in the
// order LegalMoves yields them and only a strictly better value replaces the
// current best, so ties go to the earliest move.
func (e *Engine) Minimax(pos Position, depth int, alpha int, beta int, maximizing bool) (position.Move, int, error) {
	e.stats.Nodes++

	if depth == 0 || pos.IsGameOver(true) {
		e.stats.Leaves++
		return NoMove, e.eval.Evaluate(pos), nil
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return NoMove, 0, ErrNoLegalMoves
	}

	bestMove := moves[0]
	bestEval := Infinity
	if maximizing {
		bestEval = -Infinity
	}

	for _, move := range moves {
		pos.Apply(move)
		e.applied++
		_, eval, err := e.Minimax(pos, depth-1, alpha, beta, !maximizing)
		pos.Undo()
		e.applied--
		if err != nil {
			return NoMove, 0, err
		}

		if e.exhaustive {
			if (maximizing && eval > bestEval) || (!maximizing && eval < bestEval) {
				bestEval, bestMove = eval, move
			}
			continue
		}

		if maximizing {
			if eval > bestEval {
				bestEval, bestMove = eval, move
			}
			alpha = max(alpha, bestEval)
		} else {
			if eval < bestEval {
				bestEval, bestMove = eval, move
			}
			beta = min(beta, bestEval)
		}

		if beta <= alpha {
			e.stats.Cutoffs++
			break
		}
	}

	return bestMove, bestEval, nil
}
