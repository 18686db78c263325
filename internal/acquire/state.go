package acquire

// State is a step of the acquisition fallback chain.
type State int

const (
	StateTryRestrictedCaptions State = iota
	StateTryUnrestrictedCaptions
	StateTranscribe
	StateDone
)

func (s State) String() string {
	switch s {
	case StateTryRestrictedCaptions:
		return "TryRestrictedCaptions"
	case StateTryUnrestrictedCaptions:
		return "TryUnrestrictedCaptions"
	case StateTranscribe:
		return "Transcribe"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Outcome is the recoverable result of one attempt. Fatal failures are not
// outcomes; they end the run before a transition is taken.
type Outcome int

const (
	// the attempt produced at least one segment
	OutcomeSegments Outcome = iota
	// fetch failed, wrote nothing, or the document did not validate
	OutcomeNoCaptions
	// the document validated but parsed to zero segments
	OutcomeEmptyAfterParse
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSegments:
		return "Segments"
	case OutcomeNoCaptions:
		return "NoCaptions"
	case OutcomeEmptyAfterParse:
		return "EmptyAfterParse"
	default:
		return "Unknown"
	}
}

// Next returns the state that follows s after an attempt ended with o.
// Transcribe and Done are terminal.
func Next(s State, o Outcome) State {
	switch s {
	case StateTryRestrictedCaptions:
		switch o {
		case OutcomeSegments:
			return StateDone
		case OutcomeEmptyAfterParse:
			return StateTranscribe
		default:
			return StateTryUnrestrictedCaptions
		}
	case StateTryUnrestrictedCaptions:
		if o == OutcomeSegments {
			return StateDone
		}
		return StateTranscribe
	default:
		return StateDone
	}
}
