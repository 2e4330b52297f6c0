package chat

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// fakeSender records everything written to it; Fail makes every write
// return an error, mimicking a dead connection.
type fakeSender struct {
	mu   sync.Mutex
	got  []interface{}
	fail bool
}

func (f *fakeSender) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("connection closed")
	}
	f.got = append(f.got, v)
	return nil
}

func (f *fakeSender) received() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(f.got))
	copy(out, f.got)
	return out
}

func TestHubRegisterUnregisterCount(t *testing.T) {
	h := NewHub()
	a, b := &fakeSender{}, &fakeSender{}

	if got := h.Count("f1"); got != 0 {
		t.Fatalf("empty hub count = %d, want 0", got)
	}

	h.Register("f1", a)
	h.Register("f1", b)
	if got := h.Count("f1"); got != 2 {
		t.Errorf("count after two registers = %d, want 2", got)
	}

	h.Unregister("f1", a)
	if got := h.Count("f1"); got != 1 {
		t.Errorf("count after one unregister = %d, want 1", got)
	}

	h.Unregister("f1", b)
	if got := h.Count("f1"); got != 0 {
		t.Errorf("count after all unregisters = %d, want 0", got)
	}
	if _, ok := h.rooms["f1"]; ok {
		t.Error("empty room still present in registry")
	}
}

func TestHubUnregisterUnknownForum(t *testing.T) {
	h := NewHub()
	h.Unregister("nope", &fakeSender{})
}

func TestHubBroadcastReachesRoomOnly(t *testing.T) {
	h := NewHub()
	inRoom, otherRoom := &fakeSender{}, &fakeSender{}
	h.Register("f1", inRoom)
	h.Register("f2", otherRoom)

	h.Broadcast("f1", "hello")

	if got := inRoom.received(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("room member received %v, want [hello]", got)
	}
	if got := otherRoom.received(); len(got) != 0 {
		t.Errorf("other room received %v, want nothing", got)
	}
}

func TestHubBroadcastPreservesOrder(t *testing.T) {
	h := NewHub()
	s := &fakeSender{}
	h.Register("f1", s)

	for i := 0; i < 5; i++ {
		h.Broadcast("f1", i)
	}

	got := s.received()
	if len(got) != 5 {
		t.Fatalf("received %d messages, want 5", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("position %d holds %v, want %d", i, v, i)
		}
	}
}

func TestHubBroadcastDropsFailedSender(t *testing.T) {
	h := NewHub()
	healthy, dead := &fakeSender{}, &fakeSender{fail: true}
	h.Register("f1", healthy)
	h.Register("f1", dead)

	h.Broadcast("f1", "msg")

	if got := healthy.received(); len(got) != 1 {
		t.Errorf("healthy conn received %d messages, want 1", len(got))
	}
	if got := h.Count("f1"); got != 1 {
		t.Errorf("count after failed send = %d, want 1", got)
	}
}

func TestHubBroadcastUnknownForum(t *testing.T) {
	h := NewHub()
	h.Broadcast("nope", "msg")
}

// Registering while another goroutine empties and removes the same room
// must never leave the new connection in a room the hub no longer knows;
// every surviving connection stays reachable by broadcast.
func TestHubConcurrentChurnKeepsConnectionsReachable(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup

	keepers := make([]*fakeSender, 8)
	for i := range keepers {
		keepers[i] = &fakeSender{}
		wg.Add(1)
		go func(s *fakeSender) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				tmp := &fakeSender{}
				h.Register("f1", tmp)
				h.Unregister("f1", tmp)
			}
			h.Register("f1", s)
		}(keepers[i])
	}
	wg.Wait()

	if got := h.Count("f1"); got != len(keepers) {
		t.Fatalf("count after churn = %d, want %d", got, len(keepers))
	}

	h.Broadcast("f1", "ping")
	for i, s := range keepers {
		if got := s.received(); len(got) != 1 {
			t.Errorf("keeper %d received %d messages, want 1", i, len(got))
		}
	}
}

func TestHubConcurrentUse(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			forum := fmt.Sprintf("f%d", n%4)
			s := &fakeSender{}
			h.Register(forum, s)
			h.Broadcast(forum, n)
			h.Unregister(forum, s)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		forum := fmt.Sprintf("f%d", i)
		if got := h.Count(forum); got != 0 {
			t.Errorf("%s count = %d after all goroutines exited, want 0", forum, got)
		}
	}
}
