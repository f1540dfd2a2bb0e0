// Package game implements the guessing game loop.
//
// A Loop draws a secret value from a SecretSource, then repeatedly prompts
// for a guess, parses it, and answers with a directional hint until the
// player finds the secret:
//
//	loop := game.New(game.NewRandomSource(), os.Stdin, os.Stdout)
//	session, err := loop.Run(ctx)
//
// Lines that are not unsigned integers are ignored and the player is simply
// prompted again. Failing to read a line (including end of input) ends the
// game with ErrReadInput.
//
// The loop is a two-state machine: StatePlaying until the winning guess,
// then StateWon, which is terminal.
package game
