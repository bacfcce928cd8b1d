package board

// Terminal position detection. Threefold repetition needs move
// history and is tracked by the caller, not here.

// IsCheckmate returns true if the side to move is in check with no
// legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check and
// has no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsFiftyMoveDraw returns true once 50 full moves have passed without
// a capture or pawn move.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfMoveClock >= 100
}

// IsInsufficientMaterial returns true when neither side has mating
// material: bare kings, a lone minor piece, or bishops that all stand
// on squares of one color.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	knights := p.Pieces[White][Knight] | p.Pieces[Black][Knight]
	bishops := p.Pieces[White][Bishop] | p.Pieces[Black][Bishop]
	minors := knights.PopCount() + bishops.PopCount()

	// K vs K, and K+minor vs K.
	if minors <= 1 {
		return true
	}

	// Any number of same-colored bishops cannot deliver mate.
	if knights == 0 && (bishops&LightSquares == 0 || bishops&DarkSquares == 0) {
		return true
	}

	return false
}

// IsDraw returns true for stalemate, the 50-move rule and
// insufficient material.
func (p *Position) IsDraw() bool {
	return p.IsStalemate() || p.IsFiftyMoveDraw() || p.IsInsufficientMaterial()
}

// IsTerminal returns true when no further play is possible:
// checkmate or any draw.
func (p *Position) IsTerminal() bool {
	if !p.HasLegalMoves() {
		return true
	}
	return p.IsFiftyMoveDraw() || p.IsInsufficientMaterial()
}
