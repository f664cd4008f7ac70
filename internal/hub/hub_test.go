package hub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Subscriber) [][]byte {
	var got [][]byte
	for {
		select {
		case msg := <-s.C():
			got = append(got, msg)
		default:
			return got
		}
	}
}

func TestBroadcast_ReachesOnlyRoomSubscribers(t *testing.T) {
	h := New()
	a := h.Subscribe(1)
	b := h.Subscribe(1)
	other := h.Subscribe(2)

	n := h.Broadcast(1, []byte("update"))

	assert.Equal(t, 2, n)
	assert.Equal(t, [][]byte{[]byte("update")}, drain(a))
	assert.Equal(t, [][]byte{[]byte("update")}, drain(b))
	assert.Empty(t, drain(other))
}

func TestBroadcast_NoSubscribers(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Broadcast(1, []byte("update")))
}

func TestBroadcast_DropsWhenSubscriberIsFull(t *testing.T) {
	h := New()
	slow := h.Subscribe(1)

	for i := 0; i < sendBuffer; i++ {
		require.Equal(t, 1, h.Broadcast(1, []byte("fill")))
	}
	// Buffer full: the broadcast returns immediately and reports zero
	// deliveries instead of blocking.
	assert.Equal(t, 0, h.Broadcast(1, []byte("overflow")))
	assert.Len(t, drain(slow), sendBuffer)
}

func TestSend_PointToPoint(t *testing.T) {
	h := New()
	a := h.Subscribe(1)
	b := h.Subscribe(1)

	assert.True(t, a.Send([]byte("snapshot")))

	assert.Equal(t, [][]byte{[]byte("snapshot")}, drain(a))
	assert.Empty(t, drain(b), "a direct send must not reach other subscribers")
}

func TestUnsubscribe(t *testing.T) {
	h := New()
	s := h.Subscribe(1)
	require.Equal(t, 1, h.Subscribers(1))

	h.Unsubscribe(s)

	assert.Equal(t, 0, h.Subscribers(1))
	_, open := <-s.C()
	assert.False(t, open, "channel closes on unsubscribe")
	assert.Equal(t, 0, h.Broadcast(1, []byte("late")))
}

// A viewer disconnecting mid-broadcast must cost at most a dropped
// message; it must never panic the broadcaster's goroutine with a send
// on a closed channel.
func TestBroadcast_ConcurrentUnsubscribe(t *testing.T) {
	h := New()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		msg := []byte("update")
		for {
			select {
			case <-stop:
				return
			default:
				h.Broadcast(1, msg)
			}
		}
	}()

	for i := 0; i < 500; i++ {
		s := h.Subscribe(1)
		go func() {
			for range s.C() {
			}
		}()
		h.Unsubscribe(s)
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, 0, h.Subscribers(1))
}

func TestSend_AfterUnsubscribeReportsDrop(t *testing.T) {
	h := New()
	s := h.Subscribe(1)
	h.Unsubscribe(s)
	assert.False(t, s.Send([]byte("late")))
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	h := New()
	s := h.Subscribe(1)
	h.Unsubscribe(s)
	assert.NotPanics(t, func() { h.Unsubscribe(s) })
}

func TestSubscribers_PerRoomCounts(t *testing.T) {
	h := New()
	h.Subscribe(1)
	h.Subscribe(1)
	h.Subscribe(2)

	assert.Equal(t, 2, h.Subscribers(1))
	assert.Equal(t, 1, h.Subscribers(2))
	assert.Equal(t, 0, h.Subscribers(3))
}
