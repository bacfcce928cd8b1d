package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position. The halfmove clock
// and fullmove number fields may be omitted. The parsed position is
// validated against the board invariants; ill-formed input is
// rejected with a FenError naming the offending field.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fenError("fields", fen, "want 4 to 6 space-separated fields, got "+strconv.Itoa(len(parts)))
	}

	p := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare

	if err := parsePlacement(p, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fenError("side", parts[1], "want w or b")
	}

	if err := parseCastling(p, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fenError("en passant", parts[3], "bad square")
		}
		p.EnPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, fenError("halfmove clock", parts[4], "want a non-negative integer")
		}
		p.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, fenError("fullmove number", parts[5], "want a positive integer")
		}
		p.FullMoveNumber = fmn
	}

	p.updateOccupied()
	p.findKings()

	if err := p.validate(fen); err != nil {
		return nil, err
	}

	p.Hash = p.ComputeHash()
	p.updateCheckState()

	return p, nil
}

func parsePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenError("placement", placement, "want 8 ranks")
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0

		for j := 0; j < len(rankStr); j++ {
			if file > 7 {
				return fenError("placement", rankStr, "rank overflows 8 squares")
			}

			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fenError("placement", string(c), "bad piece letter")
			}
			p.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fenError("placement", rankStr, "rank does not cover 8 squares")
		}
	}

	return nil
}

func parseCastling(p *Position, castling string) error {
	if castling == "-" {
		p.CastlingRights = NoCastling
		return nil
	}

	for i := 0; i < len(castling); i++ {
		switch castling[i] {
		case 'K':
			p.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			p.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			p.CastlingRights |= BlackKingSideCastle
		case 'q':
			p.CastlingRights |= BlackQueenSideCastle
		default:
			return fenError("castling", castling, "bad castling flag")
		}
	}

	return nil
}

// validate rejects positions that break the board invariants.
func (p *Position) validate(fen string) error {
	if p.Pieces[White][King].PopCount() != 1 || p.Pieces[Black][King].PopCount() != 1 {
		return fenError("placement", fen, "each side needs exactly one king")
	}

	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1BB|Rank8BB) != 0 {
		return fenError("placement", fen, "pawn on a back rank")
	}

	// Castling rights require the king and rook on their home squares.
	cr := p.CastlingRights
	if cr&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 && p.KingSquare[White] != E1 {
		return fenError("castling", cr.String(), "white king not on e1")
	}
	if cr&(BlackKingSideCastle|BlackQueenSideCastle) != 0 && p.KingSquare[Black] != E8 {
		return fenError("castling", cr.String(), "black king not on e8")
	}
	if cr&WhiteKingSideCastle != 0 && !p.Pieces[White][Rook].IsSet(H1) {
		return fenError("castling", cr.String(), "no white rook on h1")
	}
	if cr&WhiteQueenSideCastle != 0 && !p.Pieces[White][Rook].IsSet(A1) {
		return fenError("castling", cr.String(), "no white rook on a1")
	}
	if cr&BlackKingSideCastle != 0 && !p.Pieces[Black][Rook].IsSet(H8) {
		return fenError("castling", cr.String(), "no black rook on h8")
	}
	if cr&BlackQueenSideCastle != 0 && !p.Pieces[Black][Rook].IsSet(A8) {
		return fenError("castling", cr.String(), "no black rook on a8")
	}

	// The en passant square sits behind a pawn that just double
	// pushed: rank 6 when white is to move, rank 3 when black is.
	if ep := p.EnPassant; ep != NoSquare {
		wantRank, pawnSq := 5, ep-8
		pusher := Black
		if p.SideToMove == Black {
			wantRank, pawnSq = 2, ep+8
			pusher = White
		}
		if ep.Rank() != wantRank {
			return fenError("en passant", ep.String(), "square not on the double-push rank")
		}
		if !p.Pieces[pusher][Pawn].IsSet(pawnSq) {
			return fenError("en passant", ep.String(), "no pawn behind the square")
		}
	}

	// The side that just moved must not have left its king in check.
	them := p.SideToMove.Other()
	if p.IsSquareAttacked(p.KingSquare[them], p.SideToMove) {
		return fenError("side", p.SideToMove.String(), "side not to move is in check")
	}

	return nil
}

// FEN returns the FEN representation of the position. The en passant
// field is "-" when no square is set.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceOn(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
