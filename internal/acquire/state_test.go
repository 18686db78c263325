package acquire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		state   State
		outcome Outcome
		want    State
	}{
		{StateTryRestrictedCaptions, OutcomeSegments, StateDone},
		{StateTryRestrictedCaptions, OutcomeNoCaptions, StateTryUnrestrictedCaptions},
		{StateTryRestrictedCaptions, OutcomeEmptyAfterParse, StateTranscribe},
		{StateTryUnrestrictedCaptions, OutcomeSegments, StateDone},
		{StateTryUnrestrictedCaptions, OutcomeNoCaptions, StateTranscribe},
		{StateTryUnrestrictedCaptions, OutcomeEmptyAfterParse, StateTranscribe},
		{StateTranscribe, OutcomeSegments, StateDone},
		{StateDone, OutcomeNoCaptions, StateDone},
	}

	for _, tt := range tests {
		t.Run(tt.state.String()+"/"+tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.state, tt.outcome))
		})
	}
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "TryRestrictedCaptions", StateTryRestrictedCaptions.String())
	assert.Equal(t, "Done", StateDone.String())
	assert.Equal(t, "Unknown", State(42).String())
	assert.Equal(t, "EmptyAfterParse", OutcomeEmptyAfterParse.String())
}
