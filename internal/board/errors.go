package board

import "errors"

// Sentinel errors for the rules engine.
// Use these with errors.Is() to check for specific conditions.
var (
	// ErrInvalidSquare indicates a malformed square name or an index outside 0-63.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrMissingKing indicates a position without exactly one king per color.
	ErrMissingKing = errors.New("missing king")

	// ErrIllogicalState indicates a call whose preconditions cannot hold,
	// such as analysing king safety on a square without a king.
	ErrIllogicalState = errors.New("illogical state")

	// ErrIllegalMove indicates a move that is not in the legal-move set.
	ErrIllegalMove = errors.New("illegal move")
)
