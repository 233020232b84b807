package pardll

//
// Host: one endpoint's physical layer + data link layer + application
// buffer.
//

import "sync"

// Host binds a [PhysicalLayer] and a data link layer variant together,
// buffers bytes the data link layer has delivered for the application to
// retrieve, and runs the data link layer's event loop on its own
// goroutine.
//
// The zero value is invalid; use [NewHost].
type Host struct {
	phy *PhysicalLayer
	dll *PARDataLinkLayer

	// applicationBuffer is written by the event loop goroutine (via
	// receive) and read by the driver goroutine (via Retrieve); it uses
	// the same thread-safe fifoQueue as the bit queue and send buffer.
	applicationBuffer *fifoQueue[byte]

	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// NewHost creates a [Host] attached to medium, running dllVariant (e.g.
// "PAR") over a freshly-created [PhysicalLayer].
func NewHost(medium *Medium, dllVariant string, logger Logger) (*Host, error) {
	host := &Host{
		applicationBuffer: newFIFOQueue[byte](),
	}
	host.phy = NewPhysicalLayer(medium)
	dll, err := NewDataLinkLayer(dllVariant, host.phy, logger, host.receive)
	if err != nil {
		return nil, err
	}
	host.dll = dll
	return host, nil
}

// receive is invoked by the data link layer when it has delivered
// application bytes from the peer.
func (h *Host) receive(data []byte) {
	for _, b := range data {
		h.applicationBuffer.push(b)
	}
}

// Send enqueues bytes for transmission to the peer.
func (h *Host) Send(data []byte) {
	h.dll.Send(data)
}

// Retrieve drains and returns every byte delivered so far.
func (h *Host) Retrieve() []byte {
	return h.applicationBuffer.drainAll()
}

// Start runs the data link layer's event loop on its own goroutine. Safe
// to call more than once: calls after the first are no-ops.
func (h *Host) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return
	}
	h.started = true
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.dll.Run()
	}()
}

// Stop requests the event loop terminate and waits for its goroutine to
// exit. There is no graceful drain: in-flight frames may be abandoned.
func (h *Host) Stop() {
	h.dll.Stop()
	h.wg.Wait()
}

// Stats returns a snapshot of this host's data link layer diagnostics.
func (h *Host) Stats() PARStats {
	return h.dll.Stats()
}

// SetTranscript attaches a [TranscriptWriter] to this host's physical
// layer, recording every bit sent and received. Pass nil to detach.
func (h *Host) SetTranscript(tw *TranscriptWriter) {
	h.phy.SetTranscript(tw)
}
