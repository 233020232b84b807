package pardll

//
// Physical layer
//

import "sync"

// PhysicalLayer is one endpoint's connection to a [Medium]. Exactly one
// [DataLinkLayer] may claim a [PhysicalLayer] as its client; a second
// attempt fails with [ErrDoubleRegistration].
//
// The zero value is invalid; use [NewPhysicalLayer] to construct.
type PhysicalLayer struct {
	name     string
	medium   *Medium
	bitQueue *fifoQueue[bool]

	mu         sync.Mutex
	hasOwner   bool
	transcript *TranscriptWriter
}

// NewPhysicalLayer creates a [PhysicalLayer] registered with medium.
func NewPhysicalLayer(medium *Medium) *PhysicalLayer {
	phy := &PhysicalLayer{
		name:     newEndpointName(),
		medium:   medium,
		bitQueue: newFIFOQueue[bool](),
	}
	medium.register(phy)
	medium.logger.Infof("pardll: %s joined the medium", phy.name)
	return phy
}

// Name returns the diagnostic name assigned to this endpoint.
func (phy *PhysicalLayer) Name() string {
	return phy.name
}

// SetTranscript attaches a [TranscriptWriter] that records every bit sent
// and received by this endpoint. Pass nil to detach.
func (phy *PhysicalLayer) SetTranscript(tw *TranscriptWriter) {
	phy.mu.Lock()
	defer phy.mu.Unlock()
	phy.transcript = tw
}

// claim marks this physical layer as owned by a data link layer. It
// returns [ErrDoubleRegistration] if a client has already claimed it.
func (phy *PhysicalLayer) claim() error {
	phy.mu.Lock()
	defer phy.mu.Unlock()
	if phy.hasOwner {
		return ErrDoubleRegistration
	}
	phy.hasOwner = true
	return nil
}

// Send transmits bit onto the medium on behalf of this endpoint.
func (phy *PhysicalLayer) Send(bit bool) error {
	phy.recordTranscript("send", bit)
	return phy.medium.Transmit(phy, bit)
}

// receive is invoked by the [Medium] to deliver a bit to this endpoint.
// It never blocks: the bit is appended to an internal concurrent queue
// for the owning data link layer to drain.
func (phy *PhysicalLayer) receive(bit bool) {
	phy.recordTranscript("recv", bit)
	phy.bitQueue.push(bit)
}

// recordTranscript appends one transcript line if a [TranscriptWriter]
// is currently attached.
func (phy *PhysicalLayer) recordTranscript(direction string, bit bool) {
	phy.mu.Lock()
	tw := phy.transcript
	phy.mu.Unlock()
	if tw != nil {
		tw.Record("%s %s bit=%d", phy.name, direction, boolToBit(bit))
	}
}

// boolToBit renders a wire bit as 0 or 1 for logging.
func boolToBit(bit bool) int {
	if bit {
		return 1
	}
	return 0
}

// Retrieve pops one bit queued for this endpoint's data link layer. The
// second return value is false if no bit is currently queued.
func (phy *PhysicalLayer) Retrieve() (bool, bool) {
	return phy.bitQueue.pop()
}
