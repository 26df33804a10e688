package nats

import (
	"encoding/json"
	"testing"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"inkwell/internal/core"
)

func TestEventMsg(t *testing.T) {
	t.Parallel()

	event := core.Event{
		ID:           "event-1",
		Kind:         core.EventPostLiked,
		ActorID:      "bob",
		PostID:       "post-1",
		PostAuthorID: "alice",
		At:           time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	msg, err := eventMsg(event)
	require.NoError(t, err)

	require.Equal(t, "inkwell.post.liked", msg.Subject)
	require.Equal(t, "event-1", msg.Header.Get(libnats.MsgIdHdr))

	var decoded core.Event
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	require.Equal(t, event, decoded)
}
