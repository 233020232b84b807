package pardll

//
// PAR (Positive Acknowledgment with Retransmission) data link layer
//

import (
	"sync"
	"time"
)

// retransmissionTimeout is how long the sender waits for an ACK before
// retransmitting its last frame.
const retransmissionTimeout = 100 * time.Millisecond

// senderState is the PAR sender side of a [PARDataLinkLayer]. It is
// owned exclusively by the event loop goroutine; no synchronization is
// required.
type senderState struct {
	seq         byte
	awaitingAck bool
	lastFrame   []byte
	timerStart  time.Time
}

// receiverState is the PAR receiver side of a [PARDataLinkLayer]. Also
// loop-local.
type receiverState struct {
	seq byte
}

// PARStats accumulates observability counters for a [PARDataLinkLayer].
// Purely diagnostic: nothing reads these counters to make a protocol
// decision.
type PARStats struct {
	FramesSent           int
	FramesRetransmitted  int
	AcksSent             int
	FramesDamaged        int
	DuplicatesSuppressed int
}

// PARDataLinkLayer implements the PAR variant of [DataLinkLayer]:
// byte-stuffed framing, parity, a 1-bit alternating sequence number, and
// stop-and-wait ACK with timeout-driven retransmission.
//
// The zero value is invalid; use [NewPARDataLinkLayer].
type PARDataLinkLayer struct {
	loop *DataLinkLayer

	mu     sync.Mutex
	sender senderState
	recv   receiverState
	stats  PARStats
}

var _ dllVariant = &PARDataLinkLayer{}

// NewPARDataLinkLayer creates a PAR data link layer bound to phy, with
// completed application frames delivered via deliver. It returns
// [ErrDoubleRegistration] if phy is already claimed by another data link
// layer.
func NewPARDataLinkLayer(phy *PhysicalLayer, logger Logger, deliver func(data []byte)) (*PARDataLinkLayer, error) {
	if err := phy.claim(); err != nil {
		return nil, err
	}
	par := &PARDataLinkLayer{
		sender: senderState{seq: 0, awaitingAck: false},
		recv:   receiverState{seq: 0},
	}
	par.loop = newDataLinkLayer(phy, logger, deliver)
	par.loop.variant = par
	return par, nil
}

// Send enqueues application bytes for eventual transmission.
func (par *PARDataLinkLayer) Send(data []byte) { par.loop.Send(data) }

// Run executes the event loop; see [DataLinkLayer.Run].
func (par *PARDataLinkLayer) Run() { par.loop.Run() }

// Stop requests the event loop terminate at the next iteration boundary.
func (par *PARDataLinkLayer) Stop() { par.loop.Stop() }

// tick executes a single event loop iteration without spawning a
// goroutine, letting tests single-step the protocol deterministically.
func (par *PARDataLinkLayer) tick() { par.loop.tick() }

// Stats returns a snapshot of this layer's diagnostic counters.
func (par *PARDataLinkLayer) Stats() PARStats {
	par.mu.Lock()
	defer par.mu.Unlock()
	return par.stats
}

// canSend implements dllVariant: stop-and-wait gating. A new frame may
// only be sent once the previous one has been acknowledged.
func (par *PARDataLinkLayer) canSend() bool {
	par.mu.Lock()
	defer par.mu.Unlock()
	return !par.sender.awaitingAck
}

// createFrame implements dllVariant.
func (par *PARDataLinkLayer) createFrame(data []byte) []byte {
	par.mu.Lock()
	seq := par.sender.seq
	par.mu.Unlock()
	return createDataFrame(data, seq)
}

// finishFrameSend implements dllVariant: arms the retransmission timer
// and retains frame for retransmission.
func (par *PARDataLinkLayer) finishFrameSend(frame []byte) {
	par.mu.Lock()
	par.sender.awaitingAck = true
	par.sender.lastFrame = frame
	par.sender.timerStart = time.Now()
	par.stats.FramesSent++
	par.mu.Unlock()
}

// processFrame implements dllVariant: deframes the receive buffer and,
// on a damaged frame, logs and reports no frame so the sender's timeout
// drives retransmission.
func (par *PARDataLinkLayer) processFrame(receiveBuffer *[]byte) ([]byte, bool) {
	result, extracted := deframe(receiveBuffer)
	switch result {
	case deframeAck, deframeData:
		return extracted, true
	case deframeDamaged:
		par.mu.Lock()
		par.stats.FramesDamaged++
		par.mu.Unlock()
		par.loop.logger.Warnf("pardll: %s", ErrDamagedFrame.Error())
		return nil, false
	default:
		return nil, false
	}
}

// finishFrameReceive implements dllVariant, dispatching an extracted
// frame: an ACK clears the sender's outstanding frame and flips its
// sequence number; a data frame always triggers an ACK back and
// advances the receiver's expected sequence number and delivers the
// payload only when the received sequence number matches, so a
// retransmitted duplicate is re-acknowledged but never redelivered.
func (par *PARDataLinkLayer) finishFrameReceive(frame []byte) {
	if len(frame) == 1 && frame[0] == acknowledgmentTag {
		par.mu.Lock()
		par.sender.lastFrame = nil
		par.sender.awaitingAck = false
		par.sender.seq ^= 1
		par.sender.timerStart = time.Time{}
		par.mu.Unlock()
		return
	}

	r, payload := frame[0], frame[1:]

	par.transmitAck()

	par.mu.Lock()
	par.stats.AcksSent++
	expected := par.recv.seq
	if r == expected {
		par.recv.seq ^= 1
	} else {
		par.stats.DuplicatesSuppressed++
	}
	par.mu.Unlock()

	if r == expected {
		par.loop.deliver(payload)
	}
}

// transmitAck writes the fixed ACK frame to the physical layer.
func (par *PARDataLinkLayer) transmitAck() {
	par.loop.transmitBits(createAckFrame())
}

// checkTimeout implements dllVariant.
func (par *PARDataLinkLayer) checkTimeout() {
	par.mu.Lock()
	if !par.sender.awaitingAck {
		par.mu.Unlock()
		return
	}
	elapsed := mustTimerElapsed(par.sender.timerStart)
	if elapsed <= retransmissionTimeout {
		par.mu.Unlock()
		return
	}
	frame := par.sender.lastFrame
	par.stats.FramesRetransmitted++
	par.mu.Unlock()

	par.loop.transmitBits(frame)
	par.finishFrameSend(frame)
}

// mustTimerElapsed returns the elapsed time since timerStart. Querying
// the timer while it is not running (the zero [time.Time]) is an
// internal consistency violation: [ErrTimerNotStarted] is a programmer
// error, not a protocol condition, so this panics rather than returning
// an error on the Send/Retrieve API surface.
func mustTimerElapsed(timerStart time.Time) time.Duration {
	if timerStart.IsZero() {
		panic(ErrTimerNotStarted)
	}
	return time.Since(timerStart)
}

// parDLLConstructors is the compile-time registry mapping a data link
// layer variant name to its constructor.
var parDLLConstructors = map[string]func(*PhysicalLayer, Logger, func([]byte)) (*PARDataLinkLayer, error){
	"PAR": NewPARDataLinkLayer,
}

// NewDataLinkLayer constructs a data link layer variant by name.
func NewDataLinkLayer(name string, phy *PhysicalLayer, logger Logger, deliver func([]byte)) (*PARDataLinkLayer, error) {
	ctor, ok := parDLLConstructors[name]
	if !ok {
		return nil, wrapUnknownVariant("data link layer", name)
	}
	return ctor(phy, logger, deliver)
}
