package pardll

//
// Two-host simulation topology
//

import "sync"

// Topology wires two [Host]s to a shared [Medium] and starts both event
// loops. By convention HostA is the "local" side and HostB is the
// "remote" side; the protocol itself makes no distinction between them.
//
// The zero value is invalid; use [NewTopology].
type Topology struct {
	Medium *Medium
	HostA  *Host
	HostB  *Host

	closeOnce sync.Once
}

// NewTopology constructs a [Medium] of the given variant, two [Host]s
// running the given data link layer variant, and starts both event
// loops. Call [Topology.Close] to stop them.
func NewTopology(mediumVariant, dllVariant string, logger Logger) (*Topology, error) {
	medium, err := NewMedium(mediumVariant, logger)
	if err != nil {
		return nil, err
	}

	hostA, err := NewHost(medium, dllVariant, logger)
	if err != nil {
		return nil, err
	}
	hostB, err := NewHost(medium, dllVariant, logger)
	if err != nil {
		return nil, err
	}

	hostA.Start()
	hostB.Start()

	return &Topology{
		Medium: medium,
		HostA:  hostA,
		HostB:  hostB,
	}, nil
}

// Close stops both hosts' event loops and waits for their goroutines to
// exit. Safe to call more than once.
func (t *Topology) Close() {
	t.closeOnce.Do(func() {
		t.HostA.Stop()
		t.HostB.Stop()
	})
}
