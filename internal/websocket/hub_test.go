package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PushFansOutToAllSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 16)}
	second := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 16)}

	hub.Register(first)
	hub.Register(second)

	require.Eventually(t, func() bool { return hub.IsUserOnline(7) }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.SendToUser(7, map[string]string{"type": "order_placed"}))

	for _, client := range []*Client{first, second} {
		select {
		case msg, ok := <-client.Send:
			require.True(t, ok)
			assert.Contains(t, string(msg), "order_placed")
		case <-time.After(time.Second):
			t.Fatal("session did not receive the push")
		}
	}
}

func TestHub_DuplicateUnregisterKeepsHubAlive(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No reader on an unbuffered channel, so the first push kicks this session
	stalled := &Client{Hub: hub, UserID: 1, Send: make(chan []byte)}
	healthy := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 16)}

	hub.Register(stalled)
	hub.Register(healthy)

	require.Eventually(t, func() bool { return hub.IsUserOnline(1) }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.SendToUser(1, map[string]string{"type": "payment_approved"}))

	// Wait for the kick to close the stalled session's channel
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-stalled.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	// The read pump's defer fires a second unregister for the same session;
	// the hub must survive it and keep serving the remaining session
	hub.Unregister(stalled)

	require.NoError(t, hub.SendToUser(1, map[string]string{"type": "order_shipped"}))

	select {
	case msg, ok := <-healthy.Send:
		require.True(t, ok)
		assert.Contains(t, string(msg), "payment_approved")
	case <-time.After(time.Second):
		t.Fatal("healthy session did not receive the push")
	}

	select {
	case msg, ok := <-healthy.Send:
		require.True(t, ok)
		assert.Contains(t, string(msg), "order_shipped")
	case <-time.After(time.Second):
		t.Fatal("healthy session did not receive the second push")
	}

	hub.Unregister(healthy)
	require.Eventually(t, func() bool { return !hub.IsUserOnline(1) }, time.Second, 5*time.Millisecond)

	// A closed channel confirms the unregister actually removed the session
	select {
	case _, ok := <-healthy.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("healthy session channel was not closed")
	}
}
