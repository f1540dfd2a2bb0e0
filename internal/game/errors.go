package game

import "errors"

var (
	// ErrReadInput is returned when a line cannot be read from the input
	// stream, including when the stream is closed before the player wins.
	ErrReadInput = errors.New("failed to read line")

	// ErrWriteOutput is returned when a message cannot be written to the player.
	ErrWriteOutput = errors.New("failed to write output")

	// ErrAlreadyWon is returned by Run when the loop has already reached
	// StateWon. A Loop plays exactly one game.
	ErrAlreadyWon = errors.New("game already won")
)
