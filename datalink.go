package pardll

//
// Data link layer event loop
//

import "sync"

// MaxFrameSize is the maximum number of application bytes carried by a
// single data frame.
const MaxFrameSize = 8

// dllVariant is the capability set a concrete data link layer variant
// (such as [PARDataLinkLayer]) supplies to the shared event loop: the
// loop owns all event-loop state, and a variant supplies only the
// framing, deframing, and dispatch behavior.
type dllVariant interface {
	// canSend reports whether the event loop is currently permitted to
	// extract bytes from the send buffer and frame them.
	canSend() bool

	// createFrame frames an outgoing chunk of application bytes.
	createFrame(data []byte) []byte

	// finishFrameSend is called once a framed byte sequence has been
	// fully written to the physical layer.
	finishFrameSend(frame []byte)

	// processFrame inspects (and may mutate) the receive buffer,
	// returning an extracted frame's payload tokens and true if a
	// complete frame was found, or nil/false otherwise.
	processFrame(receiveBuffer *[]byte) ([]byte, bool)

	// finishFrameReceive dispatches a frame extracted by processFrame.
	finishFrameReceive(frame []byte)

	// checkTimeout is invoked once per event loop iteration to drive
	// retransmission.
	checkTimeout()
}

// DataLinkLayer runs the bit-level event loop: it frames outgoing
// application bytes, drains incoming bits into bytes, and dispatches
// completed frames to a variant.
//
// The zero value is invalid; use [NewPARDataLinkLayer] to construct a
// concrete instance.
type DataLinkLayer struct {
	phy *PhysicalLayer

	// sendBuffer is multi-producer (the application thread via Send)
	// and single-consumer (this layer's own event loop goroutine).
	sendBuffer *fifoQueue[byte]

	// bitBuffer and receiveBuffer are owned exclusively by the event
	// loop goroutine; no synchronization is required for them.
	bitBuffer     []bool
	receiveBuffer []byte

	variant dllVariant
	logger  Logger

	deliver func(data []byte)

	stopOnce sync.Once
	stopCh   chan struct{}
}

// newDataLinkLayer creates the shared event-loop state. variant is set by
// the caller immediately after construction (PAR does this inside its own
// constructor, since the variant needs a reference back to the loop for
// [DataLinkLayer.Send] bookkeeping and framing callbacks).
func newDataLinkLayer(phy *PhysicalLayer, logger Logger, deliver func(data []byte)) *DataLinkLayer {
	return &DataLinkLayer{
		phy:           phy,
		sendBuffer:    newFIFOQueue[byte](),
		bitBuffer:     []bool{},
		receiveBuffer: []byte{},
		logger:        logger,
		deliver:       deliver,
		stopCh:        make(chan struct{}),
	}
}

// Send enqueues application bytes for eventual transmission.
func (dll *DataLinkLayer) Send(data []byte) {
	for _, b := range data {
		dll.sendBuffer.push(b)
	}
}

// Stop requests that the event loop terminate at its next iteration
// boundary. Safe to call more than once.
func (dll *DataLinkLayer) Stop() {
	dll.stopOnce.Do(func() {
		close(dll.stopCh)
	})
}

// Run executes the event loop until [DataLinkLayer.Stop] is called. It
// is intended to run on its own goroutine; it never blocks and does not
// sleep.
func (dll *DataLinkLayer) Run() {
	for {
		select {
		case <-dll.stopCh:
			return
		default:
		}
		dll.tick()
	}
}

// tick executes one iteration of the event loop body. Exposed as its
// own method (rather than inlined into Run) so tests can single-step
// the loop deterministically instead of racing a background goroutine
// against timer- and timing-sensitive assertions.
func (dll *DataLinkLayer) tick() {
	dll.trySend()
	dll.drainBits()
	dll.tryProcessFrame()
	dll.variant.checkTimeout()
}

// trySend extracts up to [MaxFrameSize] application bytes, frames them,
// and transmits the frame bit by bit, MSB first.
func (dll *DataLinkLayer) trySend() {
	if dll.sendBuffer.len() == 0 || !dll.variant.canSend() {
		return
	}

	chunk := make([]byte, 0, MaxFrameSize)
	for len(chunk) < MaxFrameSize {
		b, ok := dll.sendBuffer.pop()
		if !ok {
			break
		}
		chunk = append(chunk, b)
	}

	frame := dll.variant.createFrame(chunk)
	dll.transmitBits(frame)
	dll.variant.finishFrameSend(frame)
}

// transmitBits writes frame to the physical layer one bit at a time,
// most-significant-bit first within each byte.
func (dll *DataLinkLayer) transmitBits(frame []byte) {
	for _, b := range frame {
		for i := 7; i >= 0; i-- {
			bit := (b>>uint(i))&1 == 1
			if err := dll.phy.Send(bit); err != nil {
				dll.logger.Warnf("pardll: physical layer send failed: %s", err.Error())
				return
			}
		}
	}
}

// drainBits pulls every bit currently queued on the physical layer into
// bitBuffer, then assembles complete bytes (MSB first) into
// receiveBuffer.
func (dll *DataLinkLayer) drainBits() {
	for {
		bit, ok := dll.phy.Retrieve()
		if !ok {
			break
		}
		dll.bitBuffer = append(dll.bitBuffer, bit)
	}

	for len(dll.bitBuffer) >= 8 {
		var b byte
		for i := 0; i < 8; i++ {
			b <<= 1
			if dll.bitBuffer[i] {
				b |= 1
			}
		}
		dll.bitBuffer = dll.bitBuffer[8:]
		dll.receiveBuffer = append(dll.receiveBuffer, b)
	}
}

// tryProcessFrame asks the variant to deframe receiveBuffer and, if a
// frame was found, dispatches it.
func (dll *DataLinkLayer) tryProcessFrame() {
	if len(dll.receiveBuffer) == 0 {
		return
	}
	frame, ok := dll.variant.processFrame(&dll.receiveBuffer)
	if !ok {
		return
	}
	dll.variant.finishFrameReceive(frame)
}
