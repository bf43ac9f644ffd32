package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned (wrapped) for any FEN the board cannot be built from.
var ErrInvalidFEN = errors.New("invalid FEN")

// normalizeFEN checks a FEN string and returns it with all six fields present.
// Missing halfmove/fullmove counters default to "0 1". The halfmove clock is
// returned separately since the board tracks it for the fifty-move rule.
func normalizeFEN(fen string) (string, int, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return "", 0, fmt.Errorf("%w: expected 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	if err := checkPlacement(fields[0]); err != nil {
		return "", 0, err
	}

	if fields[1] != "w" && fields[1] != "b" {
		return "", 0, fmt.Errorf("%w: side to move must be 'w' or 'b'", ErrInvalidFEN)
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			if !strings.ContainsRune("KQkq", ch) {
				return "", 0, fmt.Errorf("%w: bad castling rights %q", ErrInvalidFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		ep := fields[3]
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || (ep[1] != '3' && ep[1] != '6') {
			return "", 0, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, ep)
		}
	}

	halfmove := 0
	fullmove := 1
	var err error
	if len(fields) >= 5 {
		halfmove, err = strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return "", 0, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, fields[4])
		}
	}
	if len(fields) == 6 {
		fullmove, err = strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return "", 0, fmt.Errorf("%w: bad fullmove number %q", ErrInvalidFEN, fields[5])
		}
	}

	normalized := strings.Join([]string{
		fields[0], fields[1], fields[2], fields[3],
		strconv.Itoa(halfmove), strconv.Itoa(fullmove),
	}, " ")
	return normalized, halfmove, nil
}

// checkPlacement validates the piece placement field: eight ranks of eight
// files and at most one king per side. A side may have no king at all.
func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: incorrect number of ranks", ErrInvalidFEN)
	}

	var whiteKings, blackKings int
	for _, rank := range ranks {
		if len(rank) == 0 {
			return fmt.Errorf("%w: empty rank description", ErrInvalidFEN)
		}
		file := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			case strings.ContainsRune("PNBRQKpnbrqk", ch):
				if ch == 'K' {
					whiteKings++
				} else if ch == 'k' {
					blackKings++
				}
				file++
			default:
				return fmt.Errorf("%w: unrecognized piece character %q", ErrInvalidFEN, ch)
			}
			if file > 8 {
				return fmt.Errorf("%w: too many squares in rank", ErrInvalidFEN)
			}
		}
		if file != 8 {
			return fmt.Errorf("%w: rank does not have 8 columns", ErrInvalidFEN)
		}
	}

	if whiteKings > 1 || blackKings > 1 {
		return fmt.Errorf("%w: a side has more than one king", ErrInvalidFEN)
	}
	return nil
}
