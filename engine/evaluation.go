package engine

import (
	"github.com/dylhunn/dragontoothmg"

	"github.com/kz4killua/chess-ai/position"
)

// Evaluator scores a position from White's point of view: positive favours
// White, the maximizing side. It must be defined for every reachable position.
type Evaluator interface {
	Evaluate(pos Position) int
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(pos Position) int

// Evaluate calls f(pos).
func (f EvaluatorFunc) Evaluate(pos Position) int {
	return f(pos)
}

// PieceValue is the material value in centipawns of each dragontoothmg piece
// type. Kings carry no material value.
var PieceValue = [7]int{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 300,
	dragontoothmg.Bishop: 300,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
}

// MaterialEvaluation is the default evaluator. Terminal positions score
// +/-WinScore or 0 for a draw (claimable draws included); anything else is
// the material balance.
func MaterialEvaluation(pos Position) int {
	if pos.IsGameOver(true) {
		switch pos.Result(true) {
		case position.WhiteWins:
			return WinScore
		case position.BlackWins:
			return -WinScore
		default:
			return DrawScore
		}
	}
	return materialBalance(pos) + mobility(pos)
}

func materialBalance(pos Position) int {
	score := 0
	for _, piece := range []dragontoothmg.Piece{
		dragontoothmg.Pawn, dragontoothmg.Knight, dragontoothmg.Bishop,
		dragontoothmg.Rook, dragontoothmg.Queen,
	} {
		score += PieceValue[piece] * (pos.PieceCount(piece, true) - pos.PieceCount(piece, false))
	}
	return score
}

// mobility is not scored yet.
func mobility(pos Position) int {
	return 0
}
