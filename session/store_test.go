package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAccumulates(t *testing.T) {
	c := NewCart()
	c.Add(1)
	c.Add(1)

	assert.Equal(t, 2, c.Quantity(1))
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 1, c.Len())
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	c := NewCart()
	c.Add(1)

	c.Remove(42)

	assert.Equal(t, 1, c.Quantity(1))
	assert.Equal(t, 1, c.Count())
}

func TestCartRemoveDropsWholeEntry(t *testing.T) {
	c := NewCart()
	c.Add(1)
	c.Add(1)
	c.Add(2)

	c.Remove(1)

	assert.Equal(t, 0, c.Quantity(1))
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 1, c.Len())
}

func TestCartClearResetsCount(t *testing.T) {
	c := NewCart()
	c.Add(1)
	c.Add(2)
	c.Add(2)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Count())
}

func TestCartItemsReturnsCopy(t *testing.T) {
	c := NewCart()
	c.Add(1)

	items := c.Items()
	items[1] = 99

	assert.Equal(t, 1, c.Quantity(1))
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore()

	sess := st.New(7, "alice")
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, uint(7), sess.UserID)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, 0, sess.Cart.Count())

	got, ok := st.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	st.Delete(sess.ID)
	_, ok = st.Get(sess.ID)
	assert.False(t, ok)
}

func TestAnonymousSessionIsUnauthenticated(t *testing.T) {
	st := NewStore()

	sess := st.Anonymous()
	assert.False(t, sess.Authenticated())
	assert.Equal(t, 0, sess.Cart.Count())

	got, ok := st.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
}

func TestPromoteCarriesCartAndDropsOldEntry(t *testing.T) {
	st := NewStore()
	prev := st.Anonymous()
	prev.Cart.Add(3)
	prev.AddFlash("success", "Account created. Please login.")

	sess := st.Promote(prev.ID, 7, "alice")

	assert.True(t, sess.Authenticated())
	assert.NotEqual(t, prev.ID, sess.ID)
	assert.Equal(t, 1, sess.Cart.Quantity(3))

	flashes := sess.Flashes()
	require.Len(t, flashes, 1)
	assert.Equal(t, "Account created. Please login.", flashes[0].Message)

	_, ok := st.Get(prev.ID)
	assert.False(t, ok)
}

func TestPromoteWithoutPriorSession(t *testing.T) {
	st := NewStore()

	sess := st.Promote("no-such-id", 7, "alice")
	assert.True(t, sess.Authenticated())
	assert.Equal(t, 0, sess.Cart.Count())

	_, ok := st.Get(sess.ID)
	assert.True(t, ok)
}

func TestFlashesDrain(t *testing.T) {
	st := NewStore()
	sess := st.New(1, "alice")

	sess.AddFlash("success", "Added to cart")
	sess.AddFlash("info", "Removed from cart")

	flashes := sess.Flashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, "success", flashes[0].Level)
	assert.Equal(t, "Added to cart", flashes[0].Message)

	assert.Empty(t, sess.Flashes())
}

func TestFlashesConcurrentAppendAndDrain(t *testing.T) {
	st := NewStore()
	sess := st.New(1, "alice")

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2)

	collected := 0
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			sess.AddFlash("info", "notice")
		}
	}()
	go func() {
		defer wg.Done()
		for collected < n {
			collected += len(sess.Flashes())
		}
	}()
	wg.Wait()

	assert.Equal(t, n, collected)
	assert.Empty(t, sess.Flashes())
}
