package pardll

import (
	"testing"
	"time"
)

func TestHostEndToEndSingleShortPayload(t *testing.T) {
	medium := NewPerfectMedium(&NullLogger{})
	hostA := Must1(NewHost(medium, "PAR", &NullLogger{}))
	hostB := Must1(NewHost(medium, "PAR", &NullLogger{}))

	hostA.Start()
	hostB.Start()
	defer hostA.Stop()
	defer hostB.Stop()

	hostA.Send([]byte("hello"))

	deadline := time.Now().Add(2 * time.Second)
	var got []byte
	for time.Now().Before(deadline) {
		got = append(got, hostB.Retrieve()...)
		if len(got) >= len("hello") {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestHostStartIsIdempotent(t *testing.T) {
	medium := NewPerfectMedium(&NullLogger{})
	host := Must1(NewHost(medium, "PAR", &NullLogger{}))
	host.Start()
	host.Start() // must not spawn a second event loop goroutine
	host.Stop()
}

func TestHostStopWaitsForEventLoopExit(t *testing.T) {
	medium := NewPerfectMedium(&NullLogger{})
	host := Must1(NewHost(medium, "PAR", &NullLogger{}))
	host.Start()
	host.Stop()
	// A second Stop must not hang or panic.
	host.Stop()
}

func TestHostRetrieveDrainsWithoutBlocking(t *testing.T) {
	medium := NewPerfectMedium(&NullLogger{})
	host := Must1(NewHost(medium, "PAR", &NullLogger{}))
	if got := host.Retrieve(); len(got) != 0 {
		t.Fatalf("expected empty retrieve before anything arrives, got %q", got)
	}
}
