package position

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

var knightAttacks [64]uint64

func init() {
	jumps := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		for _, j := range jumps {
			r, f := rank+j[0], file+j[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				knightAttacks[sq] |= 1 << uint(r*8+f)
			}
		}
	}
}

// pawnAttacks returns the squares a pawn of the given colour on sq attacks.
func pawnAttacks(sq uint8, white bool) uint64 {
	rank, file := int(sq)/8, int(sq)%8
	dir := 1
	if !white {
		dir = -1
	}
	r := rank + dir
	if r < 0 || r > 7 {
		return 0
	}
	var attacks uint64
	if file > 0 {
		attacks |= 1 << uint(r*8+file-1)
	}
	if file < 7 {
		attacks |= 1 << uint(r*8+file+1)
	}
	return attacks
}

// kinglessMoves generates moves for a side to move that has no king on the
// board. dragontoothmg locates the king of the side to move unconditionally,
// so these positions are generated here. Without a king nothing can be pinned
// or left in check, so every pseudo-legal move is legal, and castling is
// impossible. Captures of the enemy king are never generated.
func (b *Board) kinglessMoves() []Move {
	us, them := b.sides()
	white := b.b.Wtomove
	occupied := us.All | them.All
	targets := ^us.All &^ them.Kings
	moves := make([]Move, 0, 32)

	enemy := them.All &^ them.Kings
	if ep := b.states[len(b.states)-1].ep; ep != 0 {
		enemy |= 1 << ep
	}
	for pawns := us.Pawns; pawns != 0; pawns &= pawns - 1 {
		from := uint8(bits.TrailingZeros64(pawns))
		var pushes uint64
		if white {
			pushes = (1 << (uint(from) + 8)) &^ occupied
			if pushes != 0 && from/8 == 1 {
				pushes |= (1 << (uint(from) + 16)) &^ occupied
			}
		} else if from >= 8 {
			pushes = (1 << (uint(from) - 8)) &^ occupied
			if pushes != 0 && from/8 == 6 {
				pushes |= (1 << (uint(from) - 16)) &^ occupied
			}
		}
		moves = appendPawnMoves(moves, from, pushes|pawnAttacks(from, white)&enemy)
	}

	for knights := us.Knights; knights != 0; knights &= knights - 1 {
		from := uint8(bits.TrailingZeros64(knights))
		moves = appendMoves(moves, from, knightAttacks[from]&targets)
	}
	for diagonal := us.Bishops | us.Queens; diagonal != 0; diagonal &= diagonal - 1 {
		from := uint8(bits.TrailingZeros64(diagonal))
		moves = appendMoves(moves, from, dragontoothmg.CalculateBishopMoveBitboard(from, occupied)&targets)
	}
	for straight := us.Rooks | us.Queens; straight != 0; straight &= straight - 1 {
		from := uint8(bits.TrailingZeros64(straight))
		moves = appendMoves(moves, from, dragontoothmg.CalculateRookMoveBitboard(from, occupied)&targets)
	}
	return moves
}

func appendMoves(moves []Move, from uint8, targets uint64) []Move {
	for ; targets != 0; targets &= targets - 1 {
		var m Move
		m.Setfrom(dragontoothmg.Square(from)).Setto(dragontoothmg.Square(bits.TrailingZeros64(targets)))
		moves = append(moves, m)
	}
	return moves
}

func appendPawnMoves(moves []Move, from uint8, targets uint64) []Move {
	const lastRanks = 0xFF000000000000FF
	moves = appendMoves(moves, from, targets&^lastRanks)
	for promotions := targets & lastRanks; promotions != 0; promotions &= promotions - 1 {
		to := dragontoothmg.Square(bits.TrailingZeros64(promotions))
		for _, piece := range []dragontoothmg.Piece{dragontoothmg.Queen, dragontoothmg.Rook, dragontoothmg.Bishop, dragontoothmg.Knight} {
			var m Move
			m.Setfrom(dragontoothmg.Square(from)).Setto(to).Setpromote(piece)
			moves = append(moves, m)
		}
	}
	return moves
}
