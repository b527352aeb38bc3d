// Package position converts between move lists, FEN and SAN and screens
// untrusted positions.
//
// It is only used at the edges (the command line, HTTP and MCP); the engine
// bridge passes positions through verbatim and never parses them.
package position

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/notnil/chess"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	// ErrIllegalMove indicates a move that is not legal in the given position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrControlChar indicates a position carrying line breaks or other
	// control bytes, which would split into extra engine commands.
	ErrControlChar = errors.New("position contains control characters")
)

// Check screens a position received from an untrusted caller. It rejects
// control bytes before anything else, then requires a parseable FEN.
func Check(fen string) error {
	if i := strings.IndexFunc(fen, unicode.IsControl); i >= 0 {
		return fmt.Errorf("%w (byte %d)", ErrControlChar, i)
	}

	_, err := Parse(fen)

	return err
}

// Parse decodes a FEN string.
func Parse(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}

	return chess.NewGame(opt).Position(), nil
}

// FromMoves replays UCI moves from the starting position and returns the
// resulting FEN.
func FromMoves(moves []string) (string, error) {
	return Apply(StartFEN, moves)
}

// Apply replays UCI moves on top of fen and returns the resulting FEN.
func Apply(fen string, moves []string) (string, error) {
	pos, err := Parse(fen)
	if err != nil {
		return "", err
	}

	for i, uci := range moves {
		move, err := legalMove(pos, uci)
		if err != nil {
			return "", fmt.Errorf("ply %d: %w", i+1, err)
		}

		pos = pos.Update(move)
	}

	return pos.String(), nil
}

// SAN renders a UCI move (e.g. "g1f3") in standard algebraic notation
// (e.g. "Nf3") for the position fen.
func SAN(fen, uci string) (string, error) {
	pos, err := Parse(fen)
	if err != nil {
		return "", err
	}

	move, err := legalMove(pos, uci)
	if err != nil {
		return "", err
	}

	return chess.AlgebraicNotation{}.Encode(pos, move), nil
}

// legalMove finds uci among the legal moves of pos. UCI decoding alone does
// not check legality.
func legalMove(pos *chess.Position, uci string) (*chess.Move, error) {
	notation := chess.UCINotation{}

	for _, move := range pos.ValidMoves() {
		if notation.Encode(pos, move) == uci {
			return move, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrIllegalMove, uci)
}
