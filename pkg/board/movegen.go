package board

// Move generation is legal-only: check evasions, pin restrictions and
// king safety are applied while generating, so no make/unmake
// filtering pass is needed. Generation order is deterministic for a
// given position.

// LegalMoves fills ml with every legal move for the side to move.
// The list is cleared first; the caller owns and may reuse it.
func (p *Position) LegalMoves(ml *MoveList) {
	p.generateLegal(ml, false)
}

// LegalCaptures fills ml with the legal tactical moves: captures,
// en passant and promotions.
func (p *Position) LegalCaptures(ml *MoveList) {
	p.generateLegal(ml, true)
}

// GenerateLegalMoves returns the legal moves in a fresh list. Hot
// paths should reuse a MoveList through LegalMoves instead.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.LegalMoves(ml)
	return ml
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	var ml MoveList
	p.LegalMoves(&ml)
	return ml.Len() > 0
}

func (p *Position) generateLegal(ml *MoveList, tactical bool) {
	ml.Clear()

	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]
	own := p.Occupied[us]
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	// Squares the king may not step onto. The king is removed from
	// the occupancy so sliders are seen through it.
	danger := p.seenSquares(them, occupied&^SquareBB(ksq))

	kingTarget := kingAttacks[ksq] &^ own &^ danger
	if tactical {
		kingTarget &= enemies
	}
	for t := kingTarget; t != 0; {
		ml.Add(NewMove(ksq, t.PopLSB()))
	}

	checkers := p.Checkers
	if checkers.PopCount() >= 2 {
		// Double check: only the king can move.
		return
	}

	// In single check, non-king moves must capture the checker or
	// block the checking line.
	target := UniverseBB
	if checkers != 0 {
		target = checkers | Between(ksq, checkers.LSB())
	}

	captureTarget := enemies & target
	pushTarget := ^occupied & target
	pieceTarget := target &^ own
	if tactical {
		pieceTarget &= enemies
	}

	pinned := p.Pinned

	// A pinned knight can never move: no knight jump stays on a line
	// through the king.
	for knights := p.Pieces[us][Knight] &^ pinned; knights != 0; {
		from := knights.PopLSB()
		for t := knightAttacks[from] & pieceTarget; t != 0; {
			ml.Add(NewMove(from, t.PopLSB()))
		}
	}

	for _, pt := range [...]PieceType{Bishop, Rook, Queen} {
		for pieces := p.Pieces[us][pt]; pieces != 0; {
			from := pieces.PopLSB()

			var attacks Bitboard
			switch pt {
			case Bishop:
				attacks = BishopAttacks(from, occupied)
			case Rook:
				attacks = RookAttacks(from, occupied)
			default:
				attacks = QueenAttacks(from, occupied)
			}

			allowed := attacks & pieceTarget
			if pinned.IsSet(from) {
				allowed &= Line(ksq, from)
			}
			for allowed != 0 {
				ml.Add(NewMove(from, allowed.PopLSB()))
			}
		}
	}

	p.generatePawnMoves(ml, us, captureTarget, pushTarget, tactical)

	if !tactical && checkers == 0 {
		p.generateCastling(ml, us, danger)
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, us Color, captureTarget, pushTarget Bitboard, tactical bool) {
	ksq := p.KingSquare[us]
	pawns := p.Pieces[us][Pawn]
	pinned := p.Pinned
	empty := ^p.AllOccupied

	var promoRank, doubleRank Bitboard
	var pushDir int
	if us == White {
		promoRank, doubleRank, pushDir = Rank8BB, Rank3BB, 8
	} else {
		promoRank, doubleRank, pushDir = Rank1BB, Rank6BB, -8
	}

	// Unpinned pawns move in bulk.
	free := pawns &^ pinned

	push1 := free.PawnPush(us) & empty
	push2 := (push1 & doubleRank).PawnPush(us) & empty & pushTarget
	push1 &= pushTarget

	var capA, capB Bitboard
	var dA, dB int
	if us == White {
		capA, dA = free.NorthWest()&captureTarget, 7
		capB, dB = free.NorthEast()&captureTarget, 9
	} else {
		capA, dA = free.SouthWest()&captureTarget, -9
		capB, dB = free.SouthEast()&captureTarget, -7
	}

	if !tactical {
		for t := push1 &^ promoRank; t != 0; {
			to := t.PopLSB()
			ml.Add(NewMove(Square(int(to)-pushDir), to))
		}
		for t := push2; t != 0; {
			to := t.PopLSB()
			ml.Add(NewMove(Square(int(to)-2*pushDir), to))
		}
	}
	for t := capA &^ promoRank; t != 0; {
		to := t.PopLSB()
		ml.Add(NewMove(Square(int(to)-dA), to))
	}
	for t := capB &^ promoRank; t != 0; {
		to := t.PopLSB()
		ml.Add(NewMove(Square(int(to)-dB), to))
	}

	// Promotions are emitted in both generation modes.
	for t := push1 & promoRank; t != 0; {
		to := t.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir), to)
	}
	for t := capA & promoRank; t != 0; {
		to := t.PopLSB()
		addPromotions(ml, Square(int(to)-dA), to)
	}
	for t := capB & promoRank; t != 0; {
		to := t.PopLSB()
		addPromotions(ml, Square(int(to)-dB), to)
	}

	// Pinned pawns go one by one, restricted to the pin line.
	for pp := pawns & pinned; pp != 0; {
		from := pp.PopLSB()
		line := Line(ksq, from)
		fromBB := SquareBB(from)

		step1 := fromBB.PawnPush(us) & empty & line
		if step1 != 0 {
			if to := step1.LSB(); step1&pushTarget != 0 {
				if step1&promoRank != 0 {
					addPromotions(ml, from, to)
				} else if !tactical {
					ml.Add(NewMove(from, to))
				}
			}
			if !tactical {
				step2 := (step1 & doubleRank).PawnPush(us) & empty & pushTarget
				if step2 != 0 {
					ml.Add(NewMove(from, step2.LSB()))
				}
			}
		}

		for caps := pawnAttacks[us][from] & captureTarget & line; caps != 0; {
			to := caps.PopLSB()
			if SquareBB(to)&promoRank != 0 {
				addPromotions(ml, from, to)
			} else {
				ml.Add(NewMove(from, to))
			}
		}
	}

	// En passant is rare enough to verify by simulation, which covers
	// pins, check evasion and the horizontal discovered attack where
	// both pawns leave the rank at once.
	if p.EnPassant != NoSquare {
		to := p.EnPassant
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		for attackers := p.epCapturers(); attackers != 0; {
			from := attackers.PopLSB()
			if p.epLegal(from, to, capSq, us) {
				ml.Add(NewEnPassant(from, to))
			}
		}
	}
}

// epLegal verifies an en passant capture by rebuilding the occupancy
// it would leave behind and testing the king for attacks.
func (p *Position) epLegal(from, to, capSq Square, us Color) bool {
	them := us.Other()
	ksq := p.KingSquare[us]

	occ := (p.AllOccupied &^ SquareBB(from) &^ SquareBB(capSq)) | SquareBB(to)
	enemyPawns := p.Pieces[them][Pawn] &^ SquareBB(capSq)

	attackers := (pawnAttacks[us][ksq] & enemyPawns) |
		(knightAttacks[ksq] & p.Pieces[them][Knight]) |
		(BishopAttacks(ksq, occ) & (p.Pieces[them][Bishop] | p.Pieces[them][Queen])) |
		(RookAttacks(ksq, occ) & (p.Pieces[them][Rook] | p.Pieces[them][Queen]))
	return attackers == 0
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

func (p *Position) generateCastling(ml *MoveList, us Color, danger Bitboard) {
	occupied := p.AllOccupied

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 &&
			occupied&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			danger&(SquareBB(F1)|SquareBB(G1)) == 0 {
			ml.Add(NewCastling(E1, G1))
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 &&
			occupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			danger&(SquareBB(C1)|SquareBB(D1)) == 0 {
			ml.Add(NewCastling(E1, C1))
		}
		return
	}

	if p.CastlingRights&BlackKingSideCastle != 0 &&
		occupied&(SquareBB(F8)|SquareBB(G8)) == 0 &&
		danger&(SquareBB(F8)|SquareBB(G8)) == 0 {
		ml.Add(NewCastling(E8, G8))
	}
	if p.CastlingRights&BlackQueenSideCastle != 0 &&
		occupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
		danger&(SquareBB(C8)|SquareBB(D8)) == 0 {
		ml.Add(NewCastling(E8, C8))
	}
}
