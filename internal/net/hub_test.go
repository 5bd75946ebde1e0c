package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"LocalBoard/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, h *Hub) string {
	t.Helper()
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)
	return LinkScheme + strings.TrimPrefix(srv.URL, "http://")
}

// inbox collects messages a client receives.
type inbox struct {
	mu   sync.Mutex
	msgs []Message
}

func (in *inbox) add(m Message) {
	in.mu.Lock()
	in.msgs = append(in.msgs, m)
	in.mu.Unlock()
}

func (in *inbox) types() []MessageType {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]MessageType, len(in.msgs))
	for i, m := range in.msgs {
		out[i] = m.Type
	}
	return out
}

func (in *inbox) last() Message {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.msgs[len(in.msgs)-1]
}

func join(t *testing.T, ctx context.Context, link string) (*Client, *inbox) {
	t.Helper()
	c, err := Dial(ctx, link, nil)
	require.NoError(t, err)
	in := &inbox{}
	go func() { _ = c.Listen(ctx, in.add) }()
	t.Cleanup(func() { _ = c.Close() })
	return c, in
}

func TestHub_SyncOnJoin(t *testing.T) {
	h := NewHub(nil)
	h.Snapshot = func() []board.ObjectJSON {
		return []board.ObjectJSON{{ID: "s1", Type: board.TypePath}}
	}
	link := startHub(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, in := join(t, ctx, link)

	require.Eventually(t, func() bool { return len(in.types()) == 1 }, 2*time.Second, 10*time.Millisecond)
	m := in.last()
	assert.Equal(t, MsgSync, m.Type)
	require.Len(t, m.Objects, 1)
	assert.Equal(t, "s1", m.Objects[0].ID)
}

func TestHub_RelaysToOtherPeers(t *testing.T) {
	h := NewHub(nil)
	var (
		mu   sync.Mutex
		seen []Message
	)
	h.OnMessage = func(_ *Peer, m Message) {
		mu.Lock()
		seen = append(seen, m)
		mu.Unlock()
	}
	link := startHub(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, inA := join(t, ctx, link)
	_, inB := join(t, ctx, link)
	require.Eventually(t, func() bool { return h.PeerCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	obj := board.ObjectJSON{ID: "p1", Type: board.TypePath, Points: []board.Point{{X: 1, Y: 2}}}
	require.NoError(t, a.Send(Message{Type: MsgAdd, Object: &obj}))

	require.Eventually(t, func() bool { return len(inB.types()) == 1 }, 2*time.Second, 10*time.Millisecond)
	got := inB.last()
	assert.Equal(t, MsgAdd, got.Type)
	require.NotNil(t, got.Object)
	assert.Equal(t, obj.Points, got.Object.Points)

	mu.Lock()
	assert.Len(t, seen, 1)
	mu.Unlock()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, inA.types(), "sender does not get its own message back")
}

func TestHub_SendReachesEveryPeer(t *testing.T) {
	h := NewHub(nil)
	link := startHub(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, inA := join(t, ctx, link)
	_, inB := join(t, ctx, link)
	require.Eventually(t, func() bool { return h.PeerCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, h.Send(Message{Type: MsgClear, OwnerID: "host"}))

	for _, in := range []*inbox{inA, inB} {
		require.Eventually(t, func() bool { return len(in.types()) == 1 }, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, "host", in.last().OwnerID)
	}
}

func TestHub_PeerRemovedOnClose(t *testing.T) {
	h := NewHub(nil)
	link := startHub(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c, _ := join(t, ctx, link)
	require.Eventually(t, func() bool { return h.PeerCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Close())
	require.Eventually(t, func() bool { return h.PeerCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_ServeStopsWithContext(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		link    string
		want    string
		wantErr bool
	}{
		{link: "localboard://10.0.0.5:8888", want: "ws://10.0.0.5:8888/ws"},
		{link: "localboard://10.0.0.5:8888/", want: "ws://10.0.0.5:8888/ws"},
		{link: "192.168.1.2:9000", want: "ws://192.168.1.2:9000/ws"},
		{link: "localboard://", wantErr: true},
		{link: "localboard://nohost", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, err := ParseLink(tt.link)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "localboard://10.0.0.5:8888", ShareLink("10.0.0.5", 8888))
	assert.Equal(t, "localboard://10.0.0.5:1", Board{Addr: "10.0.0.5:1"}.Link())
}

func TestGetOutgoingIP(t *testing.T) {
	assert.NotEmpty(t, GetOutgoingIP())
}
