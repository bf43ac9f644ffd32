package position

import "math/bits"

// Result is the outcome of a game as seen from a position.
type Result uint8

const (
	Ongoing Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// Status names why a game is over, or Playing if it is not.
type Status uint8

const (
	Playing Status = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoveRule
	FivefoldRepetition
	// The following end the game only when a draw is claimed.
	FiftyMoveRule
	ThreefoldRepetition
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case SeventyFiveMoveRule:
		return "seventy-five move rule"
	case FivefoldRepetition:
		return "fivefold repetition"
	case FiftyMoveRule:
		return "fifty move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	}
	return "playing"
}

const darkSquares uint64 = 0xAA55AA55AA55AA55

// Status reports whether the game is over and why. With claimDraw set, draws
// that the side to move may claim also end the game: the fifty-move rule and
// threefold repetition, each either already reached or reachable with one
// of its legal moves.
func (b *Board) Status(claimDraw bool) Status {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		if b.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if b.insufficientMaterial() {
		return InsufficientMaterial
	}

	if b.HalfmoveClock() >= seventyFiveMoveLimit {
		return SeventyFiveMoveRule
	}
	reps := b.repetitions()
	if reps >= 5 {
		return FivefoldRepetition
	}

	if claimDraw {
		if b.canClaimFiftyMoves(moves) {
			return FiftyMoveRule
		}
		if reps >= 3 || b.canClaimThreefold(moves) {
			return ThreefoldRepetition
		}
	}
	return Playing
}

// canClaimFiftyMoves reports whether the clock has reached fifty moves or
// will with one more move that is not a capture or pawn move.
func (b *Board) canClaimFiftyMoves(moves []Move) bool {
	clock := b.HalfmoveClock()
	if clock >= fiftyMoveLimit {
		return true
	}
	if clock < fiftyMoveLimit-1 {
		return false
	}
	for _, m := range moves {
		if !b.isZeroing(m) {
			return true
		}
	}
	return false
}

// canClaimThreefold reports whether one of moves reaches a position for the
// third time.
func (b *Board) canClaimThreefold(moves []Move) bool {
	if !b.replyRepeated() {
		return false
	}
	for _, m := range moves {
		if b.isZeroing(m) {
			continue
		}
		b.Apply(m)
		reps := b.repetitions()
		b.Undo()
		if reps >= 3 {
			return true
		}
	}
	return false
}

// replyRepeated reports whether some position with the opponent to move has
// already occurred twice since the last irreversible move. Without one no
// single move can make a threefold repetition.
func (b *Board) replyRepeated() bool {
	last := len(b.states) - 1
	start := max(0, last-b.states[last].rule50)
	for i := last - 1; i >= start; i -= 2 {
		for j := i - 2; j >= start; j -= 2 {
			if b.states[i].key == b.states[j].key {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether the position is terminal.
func (b *Board) IsGameOver(claimDraw bool) bool {
	return b.Status(claimDraw) != Playing
}

// Result returns the game result, or Ongoing if the game is not over.
func (b *Board) Result(claimDraw bool) Result {
	switch b.Status(claimDraw) {
	case Playing:
		return Ongoing
	case Checkmate:
		if b.WhiteToMove() {
			return BlackWins
		}
		return WhiteWins
	}
	return Draw
}

// repetitions counts how often the current position has occurred, itself
// included, since the last irreversible move.
func (b *Board) repetitions() int {
	last := len(b.states) - 1
	curr := b.states[last]
	start := max(0, last-curr.rule50)
	count := 0
	for i := last; i >= start; i -= 2 {
		if b.states[i].key == curr.key {
			count++
		}
	}
	return count
}

// insufficientMaterial reports whether neither side can possibly mate.
func (b *Board) insufficientMaterial() bool {
	return b.cannotMate(true) && b.cannotMate(false)
}

func (b *Board) cannotMate(white bool) bool {
	us, them := &b.b.White, &b.b.Black
	if !white {
		us, them = them, us
	}
	if us.Pawns|us.Rooks|us.Queens != 0 {
		return false
	}

	// A lone knight needs enemy pieces (other than queens) to hem the king in.
	if us.Knights != 0 {
		return bits.OnesCount64(us.All) <= 2 && them.All&^them.Kings&^them.Queens == 0
	}

	// Bishops all on one colour can only mate with help from pawns or knights.
	if us.Bishops != 0 {
		allBishops := b.b.White.Bishops | b.b.Black.Bishops
		sameColour := allBishops&darkSquares == 0 || allBishops&^darkSquares == 0
		pawns := b.b.White.Pawns | b.b.Black.Pawns
		knights := b.b.White.Knights | b.b.Black.Knights
		return sameColour && pawns == 0 && knights == 0
	}
	return true
}
