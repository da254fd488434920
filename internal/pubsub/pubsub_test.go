package pubsub

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMatchRecorded(t *testing.T) {
	at := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	payload, err := Encode(MatchRecorded{MatchIDs: []string{"m1", "m2"}, Action: ActionImported, At: at})
	require.NoError(t, err)

	var got MatchRecorded
	require.NoError(t, Decode(payload, &got))
	assert.Equal(t, []string{"m1", "m2"}, got.MatchIDs)
	assert.Equal(t, ActionImported, got.Action)
	assert.True(t, at.Equal(got.At))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var got RecapRequested
	assert.Error(t, Decode([]byte{0xc1}, &got))
}

func TestLocalClientDispatchesToSubscribers(t *testing.T) {
	c := NewLocal()
	var received []RecapRequested
	c.Subscribe(EventRecapRequested, func(topic EventType, data []byte) error {
		var evt RecapRequested
		if err := c.ProcessMessage(data, &evt); err != nil {
			return err
		}
		received = append(received, evt)
		return nil
	})

	require.NoError(t, c.SendMessage(EventRecapRequested, RecapRequested{Date: "2026-03-10"}))
	require.NoError(t, c.SendMessage(EventMatchRecorded, MatchRecorded{Action: ActionCreated}))

	require.Len(t, received, 1)
	assert.Equal(t, "2026-03-10", received[0].Date)
}

func TestLocalClientReturnsSubscriberError(t *testing.T) {
	c := NewLocal()
	boom := errors.New("boom")
	c.Subscribe(EventRoundProposed, func(EventType, []byte) error { return boom })

	err := c.SendMessage(EventRoundProposed, RoundProposed{TournamentID: "t1"})
	assert.ErrorIs(t, err, boom)
}
