package board

import "strings"

// MoveToUCI formats a move in UCI notation. The board context is not
// needed; the method exists for symmetry with MoveFromUCI.
func (p *Position) MoveToUCI(m Move) string {
	return m.String()
}

// MoveToSAN formats a legal move in Standard Algebraic Notation, with
// the minimum disambiguation that uniquely identifies it and a '+' or
// '#' suffix when it gives check or mate.
func (p *Position) MoveToSAN(m Move) string {
	from, to := m.From(), m.To()
	piece := p.PieceOn(from)
	pt := piece.Type()

	var sb strings.Builder

	switch {
	case m.IsCastling():
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	default:
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(p.sanDisambiguation(m, pt))
		}

		if m.IsCapture(p) {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	// Check and mate markers come from the resulting position.
	next := p.MakeMoveCopy(m)
	if next.InCheck() {
		if next.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}

	return sb.String()
}

// sanDisambiguation returns the file, rank or full square needed to
// single out the move among same-type pieces reaching the same
// destination.
func (p *Position) sanDisambiguation(m Move, pt PieceType) string {
	from, to := m.From(), m.To()

	sameFile, sameRank, others := false, false, false

	var ml MoveList
	p.LegalMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		other := ml.Get(i)
		if other.To() != to || other.From() == from {
			continue
		}
		if p.PieceOn(other.From()).Type() != pt {
			continue
		}
		others = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !others:
		return ""
	case !sameFile:
		return string([]byte{'a' + byte(from.File())})
	case !sameRank:
		return string([]byte{'1' + byte(from.Rank())})
	default:
		return from.String()
	}
}

// MoveFromSAN parses a SAN string against the position and returns
// the matching legal move. Input lacking needed disambiguation is
// rejected as ambiguous.
func (p *Position) MoveFromSAN(s string) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#")

	// Castling.
	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		kingSide := len(s) == 3
		from, to := E1, G1
		if !kingSide {
			to = C1
		}
		if p.SideToMove == Black {
			from, to = E8, G8
			if !kingSide {
				to = C8
			}
		}
		m := NewCastling(from, to)
		var ml MoveList
		p.LegalMoves(&ml)
		if !ml.Contains(m) {
			return NoMove, sanParseError(orig, "no matching legal move")
		}
		return m, nil
	}

	// Promotion suffix.
	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, sanParseError(orig, "missing promotion piece")
		}
		switch s[idx+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		default:
			return NoMove, sanParseError(orig, "bad promotion piece")
		}
		s = s[:idx]
	}

	isCapture := strings.ContainsRune(s, 'x')
	s = strings.ReplaceAll(s, "x", "")

	// Leading piece letter; pawns have none.
	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, sanParseError(orig, "bad piece letter")
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, sanParseError(orig, "missing destination")
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, sanParseError(orig, "bad destination square")
	}
	s = s[:len(s)-2]

	// Whatever precedes the destination is the disambiguator.
	fromFile, fromRank := -1, -1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'h':
			fromFile = int(c - 'a')
		case c >= '1' && c <= '8':
			fromRank = int(c - '1')
		default:
			return NoMove, sanParseError(orig, "bad disambiguation")
		}
	}

	var ml MoveList
	p.LegalMoves(&ml)

	matched := NoMove
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.To() != dest || m.IsCastling() {
			continue
		}
		from := m.From()
		if p.PieceOn(from).Type() != pt {
			continue
		}
		if fromFile >= 0 && from.File() != fromFile {
			continue
		}
		if fromRank >= 0 && from.Rank() != fromRank {
			continue
		}
		if isCapture != m.IsCapture(p) {
			continue
		}
		if m.Promotion() != promo {
			continue
		}

		if matched != NoMove {
			return NoMove, sanParseError(orig, "ambiguous move")
		}
		matched = m
	}

	if matched == NoMove {
		return NoMove, sanParseError(orig, "no matching legal move")
	}
	return matched, nil
}
