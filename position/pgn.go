package position

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// ErrInvalidPGN is returned (wrapped) when a PGN cannot be parsed or replayed.
var ErrInvalidPGN = errors.New("invalid PGN")

// FromPGN replays a PGN game and returns the final position. Every move is
// applied on the board so the repetition history matches the game.
func FromPGN(pgn string) (*Board, error) {
	g := chess.NewGame()
	if err := g.UnmarshalText([]byte(strings.TrimSpace(pgn))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPGN, err)
	}

	board, err := FromFEN(g.Positions()[0].String())
	if err != nil {
		return nil, fmt.Errorf("%w: start position: %v", ErrInvalidPGN, err)
	}

	for i, m := range g.Moves() {
		uci := chess.UCINotation{}.Encode(nil, m)
		if err := board.Push(uci); err != nil {
			return nil, fmt.Errorf("%w: ply %d: %v", ErrInvalidPGN, i+1, err)
		}
	}
	return board, nil
}
