package board

// Move encodes a chess move in 16 bits:
//
//	bits 0-5:   from square
//	bits 6-11:  to square
//	bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
//	bits 14-15: kind (0=normal, 1=promotion, 2=en passant, 3=castling)
//
// Castling is encoded as the king's two-square move; en passant as the
// capturing pawn's diagonal move onto the skipped square.
type Move uint16

const (
	kindNormal    Move = 0 << 14
	kindPromotion Move = 1 << 14
	kindEnPassant Move = 2 << 14
	kindCastling  Move = 3 << 14

	kindMask Move = 3 << 14
)

// NoMove is the reserved null move value.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | kindPromotion
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindEnPassant
}

// NewCastling creates a castling move (the king's movement).
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindCastling
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion piece type, or NoPieceType for
// non-promotion moves.
func (m Move) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return PieceType((m>>12)&3) + Knight
}

// IsPromotion returns true for promotion moves.
func (m Move) IsPromotion() bool {
	return m&kindMask == kindPromotion
}

// IsEnPassant returns true for en passant captures.
func (m Move) IsEnPassant() bool {
	return m&kindMask == kindEnPassant
}

// IsCastling returns true for castling moves.
func (m Move) IsCastling() bool {
	return m&kindMask == kindCastling
}

// IsCapture returns true if the move captures a piece on the given
// position.
func (m Move) IsCapture(p *Position) bool {
	return m.IsEnPassant() || !p.IsEmpty(m.To())
}

// String returns the UCI form of the move, e.g. "e2e4" or "e7e8q".
// The null move renders as "0000".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// MoveFromUCI parses a UCI move string against the position: the board
// context decides whether the squares describe a castling or en
// passant move. The move is not checked for legality; use ApplyMove
// for that.
func (p *Position) MoveFromUCI(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, uciParseError(s, "wrong length")
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, uciParseError(s, "bad from square")
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, uciParseError(s, "bad to square")
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, uciParseError(s, "bad promotion letter")
		}
		return NewPromotion(from, to, promo), nil
	}

	switch p.PieceOn(from).Type() {
	case King:
		if abs(int(to)-int(from)) == 2 {
			return NewCastling(from, to), nil
		}
	case Pawn:
		if to == p.EnPassant {
			return NewEnPassant(from, to), nil
		}
	}
	return NewMove(from, to), nil
}

// MaxMoves bounds the number of legal moves in any reachable position.
const MaxMoves = 256

// MoveList is a fixed-capacity move buffer. It is reused across calls
// so that move generation performs no allocation.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list's buffer.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
