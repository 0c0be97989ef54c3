package shopsdk

import "fmt"

// State is where a Controller is in the sign-in exchange.
type State int

const (
	StateIdle State = iota
	StateAwaitingPrimaryResult
	StateChallengePending
	StateAwaitingChallengeResult
	StateFinalized
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingPrimaryResult:
		return "AwaitingPrimaryResult"
	case StateChallengePending:
		return "ChallengePending"
	case StateAwaitingChallengeResult:
		return "AwaitingChallengeResult"
	case StateFinalized:
		return "Finalized"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type event int

const (
	evSubmitPrimary event = iota
	evPrimarySession
	evPrimaryChallenge
	evPrimaryFailed
	evSubmitToken
	evChallengeSession
	evChallengeRejected
	evDismiss
	evRecover
)

func (e event) String() string {
	switch e {
	case evSubmitPrimary:
		return "submitPrimary"
	case evPrimarySession:
		return "primarySession"
	case evPrimaryChallenge:
		return "primaryChallenge"
	case evPrimaryFailed:
		return "primaryFailed"
	case evSubmitToken:
		return "submitToken"
	case evChallengeSession:
		return "challengeSession"
	case evChallengeRejected:
		return "challengeRejected"
	case evDismiss:
		return "dismiss"
	case evRecover:
		return "recover"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// next is the whole transition table. Any pair not listed is invalid.
func next(s State, e event) (State, error) {
	switch s {
	case StateIdle:
		if e == evSubmitPrimary {
			return StateAwaitingPrimaryResult, nil
		}
	case StateAwaitingPrimaryResult:
		switch e {
		case evPrimarySession:
			return StateFinalized, nil
		case evPrimaryChallenge:
			return StateChallengePending, nil
		case evPrimaryFailed:
			return StateFailed, nil
		}
	case StateChallengePending:
		switch e {
		case evSubmitToken:
			return StateAwaitingChallengeResult, nil
		case evDismiss:
			return StateIdle, nil
		}
	case StateAwaitingChallengeResult:
		switch e {
		case evChallengeSession:
			return StateFinalized, nil
		case evChallengeRejected:
			return StateChallengePending, nil
		}
	case StateFinalized, StateFailed:
		if e == evRecover {
			return StateIdle, nil
		}
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
}
