// Package engine picks moves by depth-limited minimax search with alpha-beta
// pruning over a borrowed, mutable position.
package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kz4killua/chess-ai/position"
)

// Position is the rules-engine collaborator the search walks. Apply and Undo
// mutate the position in place and must be exact inverses.
type Position interface {
	LegalMoves() []position.Move
	Apply(position.Move)
	Undo()
	IsGameOver(claimDraw bool) bool
	Result(claimDraw bool) position.Result
	WhiteToMove() bool
	PieceCount(piece dragontoothmg.Piece, white bool) int
}

// Engine runs searches. It keeps no state between calls other than the
// statistics of the last search, and is not safe for concurrent use.
type Engine struct {
	eval       Evaluator
	exhaustive bool
	logger     zerolog.Logger

	stats   Stats
	applied int // moves applied and not yet undone during the current search
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvaluator replaces the default material evaluator.
func WithEvaluator(eval Evaluator) Option {
	return func(e *Engine) {
		if eval != nil {
			e.eval = eval
		}
	}
}

// WithoutPruning makes the engine search the full tree: the window is never
// narrowed and no cutoff is taken. Results are identical, only slower.
func WithoutPruning() Option {
	return func(e *Engine) {
		e.exhaustive = true
	}
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an engine using MaterialEvaluation unless told otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{
		eval:   EvaluatorFunc(MaterialEvaluation),
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats returns the counters of the last search.
func (e *Engine) Stats() Stats {
	return e.stats
}
