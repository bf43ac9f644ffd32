// Package position provides the mutable chess position the search engine
// borrows: legal move generation, make/unmake, draw bookkeeping and game
// termination, backed by dragontoothmg.
package position

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Move is a single legal transition (from, to and optional promotion).
type Move = dragontoothmg.Move

// ErrIllegalMove is returned when a move string does not match any legal move.
var ErrIllegalMove = errors.New("illegal move")

const (
	fiftyMoveLimit       = 100
	seventyFiveMoveLimit = 150
)

// state captures the information needed to reason about repetitions and draws.
// key is the position hash with the en passant square dropped unless an en
// passant capture is legal.
type state struct {
	key    uint64
	rule50 int
	ep     uint8
}

// Board is a chess position with an undo stack. Apply and Undo must be
// strictly paired; a Board is not safe for concurrent use.
type Board struct {
	b      dragontoothmg.Board
	undos  []func()
	states []state
}

// New returns a board set to the standard initial position.
func New() *Board {
	b, _ := FromFEN(StartFEN)
	return b
}

// FromFEN builds a board from a FEN string. The repetition history starts
// at this position.
func FromFEN(fen string) (*Board, error) {
	normalized, rule50, err := normalizeFEN(fen)
	if err != nil {
		return nil, err
	}
	var ep uint8
	if field := strings.Fields(normalized)[3]; field != "-" {
		if ep, err = dragontoothmg.AlgebraicToIndex(field); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
	}
	board := &Board{b: dragontoothmg.ParseFen(normalized)}
	board.pushState(rule50, ep)
	return board, nil
}

// LegalMoves returns the legal moves in the generator's (deterministic) order.
func (b *Board) LegalMoves() []Move {
	if us, _ := b.sides(); us.Kings == 0 {
		return b.kinglessMoves()
	}
	return b.b.GenerateLegalMoves()
}

// Apply plays m on the board. m must come from LegalMoves.
func (b *Board) Apply(m Move) {
	rule50 := b.states[len(b.states)-1].rule50 + 1
	var ep uint8
	if b.isZeroing(m) {
		rule50 = 0
		if us, _ := b.sides(); us.Pawns&(1<<m.From()) != 0 && (m.To()-m.From() == 16 || m.From()-m.To() == 16) {
			ep = (m.From() + m.To()) / 2
		}
	}

	b.undos = append(b.undos, b.b.Apply(m))
	b.pushState(rule50, ep)
}

// pushState records the position just reached. It must run after the board
// has been updated.
func (b *Board) pushState(rule50 int, ep uint8) {
	b.states = append(b.states, state{rule50: rule50, ep: ep})
	key := b.b.Hash()
	if ep != 0 && !b.canCaptureEnPassant(ep) {
		// dragontoothmg mixes the raw en passant square into its hash.
		key ^= uint64(ep)
	}
	b.states[len(b.states)-1].key = key
}

// canCaptureEnPassant reports whether the side to move has a legal en passant
// capture onto ep.
func (b *Board) canCaptureEnPassant(ep uint8) bool {
	us, _ := b.sides()
	if us.Pawns&pawnAttacks(ep, !b.b.Wtomove) == 0 {
		return false
	}
	for _, m := range b.LegalMoves() {
		if m.To() == ep && us.Pawns&(1<<m.From()) != 0 {
			return true
		}
	}
	return false
}

// isZeroing reports whether m resets the fifty-move counter: a pawn move or a
// capture.
func (b *Board) isZeroing(m Move) bool {
	us, them := b.sides()
	return us.Pawns&(1<<m.From()) != 0 || them.All&(1<<m.To()) != 0
}

// Undo takes back the last applied move. It panics if there is nothing to undo.
func (b *Board) Undo() {
	n := len(b.undos)
	if n == 0 {
		panic("position: undo with no applied moves")
	}
	b.undos[n-1]()
	b.undos = b.undos[:n-1]
	b.states = b.states[:len(b.states)-1]
}

// Ply returns the number of moves applied since the board was created.
func (b *Board) Ply() int {
	return len(b.undos)
}

// ParseMove finds the legal move matching a UCI string such as "e2e4" or "e7e8q".
func (b *Board) ParseMove(uci string) (Move, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	legal := b.LegalMoves()
	for _, mv := range legal {
		if mv.String() == uci {
			return mv, nil
		}
	}

	parsed, err := dragontoothmg.ParseMove(uci)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrIllegalMove, uci, err)
	}
	for _, mv := range legal {
		if mv.From() == parsed.From() && mv.To() == parsed.To() && mv.Promote() == parsed.Promote() {
			return mv, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in %s", ErrIllegalMove, uci, b.FEN())
}

// Push parses a UCI move and applies it.
func (b *Board) Push(uci string) error {
	mv, err := b.ParseMove(uci)
	if err != nil {
		return err
	}
	b.Apply(mv)
	return nil
}

// WhiteToMove reports whether White is the side to move.
func (b *Board) WhiteToMove() bool {
	return b.b.Wtomove
}

// InCheck reports whether the side to move is in check. A side without a
// king is never in check.
func (b *Board) InCheck() bool {
	if us, _ := b.sides(); us.Kings == 0 {
		return false
	}
	return b.b.OurKingInCheck()
}

// PieceCount returns how many pieces of the given type one side has.
func (b *Board) PieceCount(piece dragontoothmg.Piece, white bool) int {
	bb := &b.b.Black
	if white {
		bb = &b.b.White
	}
	switch piece {
	case dragontoothmg.Pawn:
		return bits.OnesCount64(bb.Pawns)
	case dragontoothmg.Knight:
		return bits.OnesCount64(bb.Knights)
	case dragontoothmg.Bishop:
		return bits.OnesCount64(bb.Bishops)
	case dragontoothmg.Rook:
		return bits.OnesCount64(bb.Rooks)
	case dragontoothmg.Queen:
		return bits.OnesCount64(bb.Queens)
	case dragontoothmg.King:
		return bits.OnesCount64(bb.Kings)
	}
	return 0
}

// HalfmoveClock returns the number of plies since the last capture or pawn move.
func (b *Board) HalfmoveClock() int {
	return b.states[len(b.states)-1].rule50
}

// Hash returns the Zobrist hash of the current position, the key repetitions
// are counted on. An en passant square only contributes when a capture onto it
// is legal.
func (b *Board) Hash() uint64 {
	return b.states[len(b.states)-1].key
}

// FEN returns the FEN string of the current position.
func (b *Board) FEN() string {
	return b.b.ToFen()
}

// String renders the board as an 8x8 ASCII diagram, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteByte(b.pieceChar(uint8(rank*8 + file)))
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func (b *Board) pieceChar(sq uint8) byte {
	mask := uint64(1) << sq
	for _, side := range []struct {
		bb    *dragontoothmg.Bitboards
		chars string
	}{{&b.b.White, "PNBRQK"}, {&b.b.Black, "pnbrqk"}} {
		for i, pieces := range []uint64{side.bb.Pawns, side.bb.Knights, side.bb.Bishops, side.bb.Rooks, side.bb.Queens, side.bb.Kings} {
			if pieces&mask != 0 {
				return side.chars[i]
			}
		}
	}
	return '.'
}

// sides returns the bitboards of the side to move and its opponent.
func (b *Board) sides() (us, them *dragontoothmg.Bitboards) {
	if b.b.Wtomove {
		return &b.b.White, &b.b.Black
	}
	return &b.b.Black, &b.b.White
}
