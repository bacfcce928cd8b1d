package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartingPosition(t *testing.T) {
	p := NewPosition()

	assert.Equal(t, SquareBB(A1)|SquareBB(H1)|SquareBB(A8)|SquareBB(H8), p.Pieces[White][Rook]|p.Pieces[Black][Rook])
	assert.Equal(t, SquareBB(B1)|SquareBB(G1)|SquareBB(B8)|SquareBB(G8), p.Pieces[White][Knight]|p.Pieces[Black][Knight])
	assert.Equal(t, SquareBB(C1)|SquareBB(F1)|SquareBB(C8)|SquareBB(F8), p.Pieces[White][Bishop]|p.Pieces[Black][Bishop])
	assert.Equal(t, SquareBB(D1)|SquareBB(D8), p.Pieces[White][Queen]|p.Pieces[Black][Queen])
	assert.Equal(t, SquareBB(E1)|SquareBB(E8), p.Pieces[White][King]|p.Pieces[Black][King])
	assert.Equal(t, Rank2BB|Rank7BB, p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])

	assert.Equal(t, White, p.SideToMove)
	assert.Equal(t, AllCastling, p.CastlingRights)
	assert.Equal(t, NoSquare, p.EnPassant)
	assert.Equal(t, 0, p.HalfMoveClock)
	assert.Equal(t, 1, p.FullMoveNumber)
	assert.Equal(t, E1, p.KingSquare[White])
	assert.Equal(t, E8, p.KingSquare[Black])
	assert.False(t, p.InCheck())
	assert.Equal(t, p.ComputeHash(), p.Hash)
	assert.Equal(t, StartFEN, p.FEN())
}

// checkInvariants verifies the structural board invariants.
func checkInvariants(t *testing.T, p *Position) {
	t.Helper()

	for c := White; c <= Black; c++ {
		var union Bitboard
		for pt := Pawn; pt <= King; pt++ {
			for other := pt + 1; other <= King; other++ {
				if p.Pieces[c][pt]&p.Pieces[c][other] != 0 {
					t.Fatalf("%s %s and %s bitboards overlap", c, pt, other)
				}
			}
			union |= p.Pieces[c][pt]
		}
		if union != p.Occupied[c] {
			t.Fatalf("%s occupancy cache out of sync", c)
		}
		if p.Pieces[c][King].PopCount() != 1 {
			t.Fatalf("%s has %d kings", c, p.Pieces[c][King].PopCount())
		}
		if p.KingSquare[c] != p.Pieces[c][King].LSB() {
			t.Fatalf("%s king square cache out of sync", c)
		}
	}
	if p.Occupied[White]&p.Occupied[Black] != 0 {
		t.Fatal("color occupancies overlap")
	}
	if p.AllOccupied != p.Occupied[White]|p.Occupied[Black] {
		t.Fatal("total occupancy cache out of sync")
	}

	for sq := A1; sq <= H8; sq++ {
		piece := p.PieceOn(sq)
		if piece == NoPiece {
			if p.AllOccupied.IsSet(sq) {
				t.Fatalf("square %s occupied but PieceOn is empty", sq)
			}
			continue
		}
		if !p.Pieces[piece.Color()][piece.Type()].IsSet(sq) {
			t.Fatalf("PieceOn(%s) = %s disagrees with bitboards", sq, piece)
		}
	}

	// The side that just moved must not be left in check.
	them := p.SideToMove.Other()
	if p.IsSquareAttacked(p.KingSquare[them], p.SideToMove) {
		t.Fatalf("side not to move is in check:\n%s", p)
	}

	if p.Hash != p.ComputeHash() {
		t.Fatalf("incremental hash %016x != recomputed %016x", p.Hash, p.ComputeHash())
	}
}

// TestMakeUnmakeRoundTrip makes and unmakes every legal move along a
// real game and demands bitwise restoration, hash included.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	game := []string{
		"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6",
		"Be2", "e5", "Nb3", "Be7", "O-O", "O-O", "Be3", "Be6", "Qd2", "Nbd7",
	}

	p := NewPosition()
	for _, san := range game {
		var ml MoveList
		p.LegalMoves(&ml)

		for i := 0; i < ml.Len(); i++ {
			m := ml.Get(i)
			before := *p
			undo := p.MakeMove(m)
			checkInvariants(t, p)
			p.UnmakeMove(m, undo)
			if *p != before {
				t.Fatalf("make/unmake of %s did not restore the position", m)
			}
		}

		m, err := p.MoveFromSAN(san)
		if err != nil {
			t.Fatalf("MoveFromSAN(%q): %v", san, err)
		}
		p.MakeMove(m)
		checkInvariants(t, p)
	}
}

func TestZobristTransposition(t *testing.T) {
	// Knights out and back: the start position repeats with a higher
	// move counter, and counters are not part of the key.
	p := NewPosition()
	start := p.Hash
	for _, san := range []string{"Nf3", "Nf6", "Ng1", "Ng8"} {
		m, err := p.MoveFromSAN(san)
		if err != nil {
			t.Fatal(err)
		}
		p.MakeMove(m)
	}
	assert.Equal(t, start, p.Hash)

	// Different move orders into the same position share a key.
	a := NewPosition()
	for _, san := range []string{"e4", "e5", "Nf3"} {
		m, _ := a.MoveFromSAN(san)
		a.MakeMove(m)
	}
	b := NewPosition()
	for _, san := range []string{"Nf3", "e5", "e4"} {
		m, _ := b.MoveFromSAN(san)
		b.MakeMove(m)
	}
	assert.Equal(t, a.Hash, b.Hash)
}

func TestZobristDeadEnPassant(t *testing.T) {
	// After 1.e4 the en passant square is set but no black pawn can
	// use it, so the key must match the same position described
	// without an en passant square.
	p := NewPosition()
	m, _ := p.MoveFromUCI("e2e4")
	p.MakeMove(m)

	plain, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, plain.Hash, p.Hash)

	// With a capture actually available the file must be hashed.
	live, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKB1R b KQkq e3 0 2")
	if err != nil {
		t.Fatal(err)
	}
	dead, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKB1R b KQkq - 0 2")
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEqual(t, dead.Hash, live.Hash)
}

func TestApplyMoveRejectsIllegal(t *testing.T) {
	p := NewPosition()
	before := *p

	_, err := p.ApplyMove(NewMove(E2, E5))
	var illegalErr *IllegalMoveError
	assert.ErrorAs(t, err, &illegalErr)
	assert.Equal(t, before, *p, "position must be unmodified after a rejected move")

	undo, err := p.ApplyMove(NewMove(E2, E4))
	assert.NoError(t, err)
	p.UnmakeMove(NewMove(E2, E4), undo)
	assert.Equal(t, before, *p)
}

func TestMakeMoveCopy(t *testing.T) {
	p := NewPosition()
	before := *p

	q := p.MakeMoveCopy(NewMove(E2, E4))
	assert.Equal(t, before, *p, "receiver must stay untouched")
	assert.Equal(t, Black, q.SideToMove)
	assert.Equal(t, E3, q.EnPassant)
}

func TestNullMove(t *testing.T) {
	p, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatal(err)
	}
	before := *p

	undo := p.MakeNullMove()
	assert.Equal(t, Black, p.SideToMove)
	assert.NotEqual(t, before.Hash, p.Hash)

	p.UnmakeNullMove(undo)
	assert.Equal(t, before, *p)
}

func TestCastlingRightsErosion(t *testing.T) {
	p, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	// Moving the h1 rook drops white's king side right only.
	m, _ := p.MoveFromUCI("h1g1")
	undo := p.MakeMove(m)
	assert.Equal(t, WhiteQueenSideCastle|BlackKingSideCastle|BlackQueenSideCastle, p.CastlingRights)
	p.UnmakeMove(m, undo)
	assert.Equal(t, AllCastling, p.CastlingRights)

	// Capturing the a8 rook drops black's queen side right.
	m, _ = p.MoveFromUCI("a1a8")
	p.MakeMove(m)
	assert.Equal(t, WhiteKingSideCastle|BlackKingSideCastle, p.CastlingRights)

	// Moving the king drops both rights of the mover.
	p2, _ := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, _ = p2.MoveFromUCI("e1e2")
	p2.MakeMove(m)
	assert.Equal(t, BlackKingSideCastle|BlackQueenSideCastle, p2.CastlingRights)
}

func TestEnPassantCapture(t *testing.T) {
	p, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKB1R b KQkq e3 0 2")
	if err != nil {
		t.Fatal(err)
	}

	m, err := p.MoveFromUCI("d4e3")
	assert.NoError(t, err)
	assert.True(t, m.IsEnPassant())

	undo, err := p.ApplyMove(m)
	assert.NoError(t, err)
	// The captured pawn disappears from e4, not from the destination.
	assert.Equal(t, NoPiece, p.PieceOn(E4))
	assert.Equal(t, BlackPawn, p.PieceOn(E3))
	assert.Equal(t, WhitePawn, undo.Captured)
	checkInvariants(t, p)
}
