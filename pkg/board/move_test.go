package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveEncoding(t *testing.T) {
	m := NewMove(E2, E4)
	assert.Equal(t, E2, m.From())
	assert.Equal(t, E4, m.To())
	assert.False(t, m.IsPromotion())
	assert.False(t, m.IsCastling())
	assert.False(t, m.IsEnPassant())
	assert.Equal(t, NoPieceType, m.Promotion())
	assert.Equal(t, "e2e4", m.String())

	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		pm := NewPromotion(A7, A8, pt)
		assert.True(t, pm.IsPromotion())
		assert.Equal(t, pt, pm.Promotion())
		assert.Equal(t, A7, pm.From())
		assert.Equal(t, A8, pm.To())
	}
	assert.Equal(t, "a7a8q", NewPromotion(A7, A8, Queen).String())

	c := NewCastling(E1, G1)
	assert.True(t, c.IsCastling())
	assert.Equal(t, "e1g1", c.String())

	ep := NewEnPassant(D4, E3)
	assert.True(t, ep.IsEnPassant())

	assert.Equal(t, "0000", NoMove.String())
}

func TestMoveFromUCIContext(t *testing.T) {
	// The same square pair means different things on different boards.
	p, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	m, err := p.MoveFromUCI("e1g1")
	assert.NoError(t, err)
	assert.True(t, m.IsCastling())

	p, err = ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKB1R b KQkq e3 0 2")
	assert.NoError(t, err)
	m, err = p.MoveFromUCI("d4e3")
	assert.NoError(t, err)
	assert.True(t, m.IsEnPassant())

	m, err = p.MoveFromUCI("d4d3")
	assert.NoError(t, err)
	assert.False(t, m.IsEnPassant())
}

func TestMoveList(t *testing.T) {
	var ml MoveList
	assert.Equal(t, 0, ml.Len())

	ml.Add(NewMove(E2, E4))
	ml.Add(NewMove(D2, D4))
	assert.Equal(t, 2, ml.Len())
	assert.Equal(t, NewMove(E2, E4), ml.Get(0))
	assert.True(t, ml.Contains(NewMove(D2, D4)))
	assert.False(t, ml.Contains(NewMove(C2, C4)))

	ml.Swap(0, 1)
	assert.Equal(t, NewMove(D2, D4), ml.Get(0))

	assert.Len(t, ml.Slice(), 2)

	ml.Clear()
	assert.Equal(t, 0, ml.Len())
}
