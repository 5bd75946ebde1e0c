package state

import (
	"sync"
	"testing"

	"LocalBoard/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stroke(owner string) board.ObjectJSON {
	return board.ObjectJSON{
		Type:    board.TypePath,
		OwnerID: owner,
		Points:  []board.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		Color:   "#000000",
		Width:   3,
	}
}

func TestStore_AddLocalStamps(t *testing.T) {
	s := NewStore("site-a", nil)

	first := s.AddLocal(stroke(""))
	second := s.AddLocal(stroke("alice"))

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "site-a", first.OwnerID)
	assert.Equal(t, "alice", second.OwnerID)
	assert.Equal(t, uint64(1), first.Lamport)
	assert.Equal(t, uint64(2), second.Lamport)
	assert.Equal(t, 2, s.Len())
}

func TestStore_AddRemoteDeduplicates(t *testing.T) {
	a := NewStore("a", nil)
	b := NewStore("b", nil)

	st := a.AddLocal(stroke("a"))
	assert.True(t, b.AddRemote(st))
	assert.False(t, b.AddRemote(st))
	assert.False(t, b.AddRemote(stroke("a")), "unnamed strokes are rejected")

	got, ok := b.Get(st.ID)
	require.True(t, ok)
	assert.Equal(t, st, got)
}

func TestStore_AddRemoteAdvancesClock(t *testing.T) {
	s := NewStore("b", nil)
	remote := stroke("a")
	remote.ID = "r1"
	remote.Lamport = 41

	s.AddRemote(remote)
	local := s.AddLocal(stroke("b"))
	assert.Equal(t, uint64(42), local.Lamport)
}

func TestStore_RemoveByOwner(t *testing.T) {
	s := NewStore("me", nil)
	mine := s.AddLocal(stroke("me"))
	theirs := stroke("you")
	theirs.ID = "t1"
	s.AddRemote(theirs)

	ids := s.RemoveByOwner("me")
	assert.Equal(t, []string{mine.ID}, ids)
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.RemoveByOwner("nobody"))

	hist := s.History()
	require.Len(t, hist, 4)
	assert.Equal(t, OpClearOwner, hist[2].Type)
}

func TestStore_AllIsOrdered(t *testing.T) {
	s := NewStore("me", nil)
	for i, id := range []string{"c", "a", "b"} {
		st := stroke("x")
		st.ID = id
		st.Lamport = uint64(10 - i%2)
		s.AddRemote(st)
	}

	var ids []string
	for _, st := range s.All() {
		ids = append(ids, st.ID)
	}
	// a has lamport 9; b and c share 10 and sort by id.
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestStore_MergeConverges(t *testing.T) {
	a := NewStore("a", nil)
	b := NewStore("b", nil)
	a.AddLocal(stroke("a"))
	a.AddLocal(stroke("a"))
	b.AddLocal(stroke("b"))

	newOnB := b.Merge(a.All())
	newOnA := a.Merge(b.All())

	assert.Len(t, newOnB, 2)
	assert.Len(t, newOnA, 1)
	assert.Equal(t, a.All(), b.All())
}

func TestClock_ConcurrentTicks(t *testing.T) {
	var c Clock
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Tick()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(800), c.Now())

	c.Observe(10)
	assert.Equal(t, uint64(800), c.Now())
	c.Observe(900)
	assert.Equal(t, uint64(900), c.Now())
}

func TestNewStore_GeneratesSite(t *testing.T) {
	assert.NotEmpty(t, NewStore("", nil).Site())
	assert.NotEqual(t, NewStore("", nil).Site(), NewStore("", nil).Site())
}
