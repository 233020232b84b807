package pardll

import (
	"testing"
	"time"
)

func TestNewTopologyUnknownMediumVariant(t *testing.T) {
	_, err := NewTopology("Bogus", "PAR", &NullLogger{})
	if err == nil {
		t.Fatal("expected an error for an unknown medium variant")
	}
	if !isUnknownVariant(err) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestNewTopologyUnknownDataLinkLayerVariant(t *testing.T) {
	_, err := NewTopology("Perfect", "Bogus", &NullLogger{})
	if err == nil {
		t.Fatal("expected an error for an unknown data link layer variant")
	}
	if !isUnknownVariant(err) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func isUnknownVariant(err error) bool {
	for err != nil {
		if err == ErrUnknownVariant {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func retrieveWithin(t *testing.T, host *Host, want int, timeout time.Duration) []byte {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var got []byte
	for time.Now().Before(deadline) {
		got = append(got, host.Retrieve()...)
		if len(got) >= want {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d bytes, got %q", want, got)
	return nil
}

func TestTopologyTwoFramePayload(t *testing.T) {
	topo := Must1(NewTopology("Perfect", "PAR", &NullLogger{}))
	defer topo.Close()

	payload := []byte("abcdefghi")
	topo.HostA.Send(payload)
	got := retrieveWithin(t, topo.HostB, len(payload), 2*time.Second)
	if string(got) != string(payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}

func TestTopologyPayloadRequiringEscaping(t *testing.T) {
	topo := Must1(NewTopology("Perfect", "PAR", &NullLogger{}))
	defer topo.Close()

	payload := []byte{startTag, stopTag, escapeTag, 0x00, 0xFF}
	topo.HostA.Send(payload)
	got := retrieveWithin(t, topo.HostB, len(payload), 2*time.Second)
	if string(got) != string(payload) {
		t.Fatalf("got %x, want %x", got, payload)
	}
}

func TestTopologySimultaneousBidirectionalTraffic(t *testing.T) {
	topo := Must1(NewTopology("Perfect", "PAR", &NullLogger{}))
	defer topo.Close()

	toB := []byte("ping")
	toA := []byte("pong")
	topo.HostA.Send(toB)
	topo.HostB.Send(toA)

	gotB := retrieveWithin(t, topo.HostB, len(toB), 2*time.Second)
	gotA := retrieveWithin(t, topo.HostA, len(toA), 2*time.Second)

	if string(gotB) != string(toB) {
		t.Fatalf("hostB got %q, want %q", gotB, toB)
	}
	if string(gotA) != string(toA) {
		t.Fatalf("hostA got %q, want %q", gotA, toA)
	}
}

func TestTopologyLossyMediumEventuallyDelivers(t *testing.T) {
	topo := Must1(NewTopology("LowNoise", "PAR", &NullLogger{}))
	defer topo.Close()

	payload := []byte("retransmit me")
	topo.HostA.Send(payload)
	got := retrieveWithin(t, topo.HostB, len(payload), 10*time.Second)
	if string(got) != string(payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}

	stats := topo.HostA.Stats()
	t.Logf("frames sent=%d retransmitted=%d", stats.FramesSent, stats.FramesRetransmitted)
}
