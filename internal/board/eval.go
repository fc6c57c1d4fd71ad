package board

// MateScore is the score of a mated position, negative when White is mated.
const MateScore = 10000

// PieceValues holds the material value of each piece type, indexed by PieceType.
var PieceValues = [7]int{NoPieceType: 0, Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 0}

// Evaluate scores a position from White's point of view: zero for a draw,
// MateScore against the side to move when it is mated, otherwise White's
// material minus Black's.
func Evaluate(active Color, white, black []Piece, checkmate, draw bool) int {
	switch {
	case draw:
		return 0
	case checkmate && active == White:
		return -MateScore
	case checkmate:
		return MateScore
	}
	return Material(white) - Material(black)
}

// Material sums the values of pieces.
func Material(pieces []Piece) int {
	total := 0
	for _, p := range pieces {
		total += PieceValues[p.Type()]
	}
	return total
}
