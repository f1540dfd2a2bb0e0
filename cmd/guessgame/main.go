// Package main provides the entry point for the guessgame CLI.
//
// guessgame is an interactive number-guessing game. It picks a secret
// number between 1 and 100 and answers every guess with "Too small!",
// "Too big!" or "You win!".
//
// Usage:
//
//	guessgame
//	guessgame --history
//	guessgame history
//
// See --help for all available options.
package main

// main is the entry point for guessgame.
func main() {
	Execute()
}
