package board

// UndoInfo captures the state MakeMove destroys, so UnmakeMove can
// restore the position exactly. Undo records are plain values and are
// meant to live on the caller's stack.
type UndoInfo struct {
	Captured       Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	Checkers       Bitboard
	Pinned         Bitboard
}

// castlingRightMask maps a square to the rights a move touching it
// revokes: the king and rook home squares.
var castlingRightMask [64]CastlingRights

func init() {
	castlingRightMask[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	castlingRightMask[H1] = WhiteKingSideCastle
	castlingRightMask[A1] = WhiteQueenSideCastle
	castlingRightMask[E8] = BlackKingSideCastle | BlackQueenSideCastle
	castlingRightMask[H8] = BlackKingSideCastle
	castlingRightMask[A8] = BlackQueenSideCastle
}

// MakeMove applies a legal move to the position and returns the undo
// record. The move must come from the current legal move list;
// ApplyMove is the checked entry point. MakeMove performs no
// allocation.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		Captured:       NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		Checkers:       p.Checkers,
		Pinned:         p.Pinned,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.PieceOn(from)
	pt := piece.Type()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]
	p.Hash ^= p.epHashContribution()
	p.EnPassant = NoSquare

	// Captures. The en passant victim sits behind the destination
	// square, on the origin rank of the capturing pawn.
	if m.IsEnPassant() {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		undo.Captured = NewPiece(Pawn, them)
		p.removePiece(undo.Captured, capSq)
		p.Hash ^= zobristPiece[them][Pawn][capSq]
	} else if captured := p.PieceOn(to); captured != NoPiece {
		undo.Captured = captured
		p.removePiece(captured, to)
		p.Hash ^= zobristPiece[them][captured.Type()][to]
	}

	p.movePiece(piece, from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promo := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promo] |= SquareBB(to)
		p.Hash ^= zobristPiece[us][Pawn][to]
		p.Hash ^= zobristPiece[us][promo][to]
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.movePiece(NewPiece(Rook, us), rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom]
		p.Hash ^= zobristPiece[us][Rook][rookTo]
	}

	p.CastlingRights &^= castlingRightMask[from] | castlingRightMask[to]
	p.Hash ^= zobristCastling[p.CastlingRights]

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	}

	if pt == Pawn || undo.Captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.Hash ^= p.epHashContribution()

	p.updateCheckState()

	return undo
}

// UnmakeMove reverses a move made with MakeMove, restoring the
// position bitwise including the Zobrist key. The cached check state
// comes back from the undo record without recomputation.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	us := p.SideToMove.Other()
	from, to := m.From(), m.To()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.Pinned = undo.Pinned
	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}

	// Demote the promoted piece back to a pawn before moving it home.
	if m.IsPromotion() {
		p.Pieces[us][m.Promotion()] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	p.movePiece(p.PieceOn(to), to, from)

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.movePiece(NewPiece(Rook, us), rookTo, rookFrom)
	}

	if undo.Captured != NoPiece {
		capSq := to
		if m.IsEnPassant() {
			if us == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		p.setPiece(undo.Captured, capSq)
	}
}

// castlingRookSquares returns the rook's from and to squares for a
// castling move given the king's movement.
func castlingRookSquares(kingFrom, kingTo Square) (Square, Square) {
	rank := kingFrom.Rank()
	if kingTo > kingFrom {
		return NewSquare(7, rank), NewSquare(5, rank) // king side
	}
	return NewSquare(0, rank), NewSquare(3, rank) // queen side
}

// ApplyMove verifies the move against the current legal move list and
// applies it. On IllegalMoveError the position is unmodified.
func (p *Position) ApplyMove(m Move) (UndoInfo, error) {
	var ml MoveList
	p.LegalMoves(&ml)
	if !ml.Contains(m) {
		return UndoInfo{}, &IllegalMoveError{Move: m}
	}
	return p.MakeMove(m), nil
}

// MakeMoveCopy clones the position and applies the move to the clone,
// leaving the receiver untouched. Hot paths should prefer
// MakeMove/UnmakeMove.
func (p *Position) MakeMoveCopy(m Move) *Position {
	q := p.Copy()
	q.MakeMove(m)
	return q
}

// NullMoveUndo stores the state needed to reverse a null move.
type NullMoveUndo struct {
	EnPassant Square
	Hash      uint64
	Checkers  Bitboard
	Pinned    Bitboard
}

// MakeNullMove passes the turn without moving a piece. Callers use it
// for null-move pruning; the position must not be in check.
func (p *Position) MakeNullMove() NullMoveUndo {
	undo := NullMoveUndo{
		EnPassant: p.EnPassant,
		Hash:      p.Hash,
		Checkers:  p.Checkers,
		Pinned:    p.Pinned,
	}

	p.Hash ^= p.epHashContribution()
	p.EnPassant = NoSquare

	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= zobristSideToMove

	p.updateCheckState()

	return undo
}

// UnmakeNullMove reverses a null move.
func (p *Position) UnmakeNullMove(undo NullMoveUndo) {
	p.EnPassant = undo.EnPassant
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.Pinned = undo.Pinned
	p.SideToMove = p.SideToMove.Other()
}
