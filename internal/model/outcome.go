package model

import "fmt"

// Outcome is the result of comparing a guess with the secret value.
type Outcome int

const (
	// OutcomeTooSmall means the guess is below the secret value.
	OutcomeTooSmall Outcome = iota

	// OutcomeTooBig means the guess is above the secret value.
	OutcomeTooBig

	// OutcomeWin means the guess equals the secret value.
	OutcomeWin
)

// Compare returns the outcome of guess against secret using the natural
// ordering of unsigned integers.
func Compare(guess, secret uint64) Outcome {
	switch {
	case guess < secret:
		return OutcomeTooSmall
	case guess > secret:
		return OutcomeTooBig
	default:
		return OutcomeWin
	}
}

// String returns the stable identifier stored in the history database.
func (o Outcome) String() string {
	switch o {
	case OutcomeTooSmall:
		return "too_small"
	case OutcomeTooBig:
		return "too_big"
	case OutcomeWin:
		return "win"
	default:
		return "unknown"
	}
}

// Hint returns the line shown to the player for this outcome.
func (o Outcome) Hint() string {
	switch o {
	case OutcomeTooSmall:
		return "Too small!"
	case OutcomeTooBig:
		return "Too big!"
	case OutcomeWin:
		return "You win!"
	default:
		return ""
	}
}

// ParseOutcome converts an identifier produced by String back into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "too_small":
		return OutcomeTooSmall, nil
	case "too_big":
		return OutcomeTooBig, nil
	case "win":
		return OutcomeWin, nil
	default:
		return 0, fmt.Errorf("unknown outcome: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so JSON reports carry the
// identifier instead of the numeric value.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
