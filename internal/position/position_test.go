package position

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromMoves(t *testing.T) {
	fen, err := FromMoves([]string{"e2e4", "e7e5", "g1f3"})

	require.NoError(t, err)
	require.True(t,
		strings.HasPrefix(fen, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq"),
		fen)
}

func TestFromMoves_Empty(t *testing.T) {
	fen, err := FromMoves(nil)

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(fen, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"), fen)
}

func TestFromMoves_Illegal(t *testing.T) {
	_, err := FromMoves([]string{"e2e4", "e2e4"})

	require.ErrorIs(t, err, ErrIllegalMove)
	require.Contains(t, err.Error(), "ply 2")
}

func TestApply_Promotion(t *testing.T) {
	fen, err := Apply("8/4P3/8/8/8/8/8/K6k w - - 0 1", []string{"e7e8q"})

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(fen, "4Q3/8/8/8/8/8/8/K6k b"), fen)
}

func TestSAN(t *testing.T) {
	tests := []struct {
		fen  string
		uci  string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"8/4P3/8/8/8/8/8/K6k w - - 0 1", "e7e8q", "e8=Q"},
	}

	for _, tt := range tests {
		t.Run(tt.uci, func(t *testing.T) {
			san, err := SAN(tt.fen, tt.uci)

			require.NoError(t, err)
			require.Equal(t, tt.want, san)
		})
	}
}

func TestSAN_Errors(t *testing.T) {
	_, err := SAN(StartFEN, "e2e5")
	require.ErrorIs(t, err, ErrIllegalMove)

	_, err = SAN("not a fen", "e2e4")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(StartFEN))
	require.NoError(t, Check("8/4P3/8/8/8/8/8/K6k w - - 0 1"))

	for name, fen := range map[string]string{
		"line feed":       "x\nsetoption name Debug Log File value /tmp/owned",
		"carriage return": StartFEN + "\rquit",
		"nul":             StartFEN + "\x00",
		"tab":             "8/8/8/8/8/8/8/K6k\tw - - 0 1",
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, Check(fen), ErrControlChar)
		})
	}

	t.Run("not a fen", func(t *testing.T) {
		err := Check("startpos")

		require.Error(t, err)
		require.NotErrorIs(t, err, ErrControlChar)
	})
}
