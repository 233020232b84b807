// Package pardll is a two-host data link layer simulator.
//
// It models a byte stream sent between two endpoints over a shared,
// possibly noisy, bit-level [Medium] using a Positive-Acknowledgment-with-
// Retransmission (PAR) stop-and-wait protocol. The wire format is a
// byte-stuffed frame with a parity byte and a 1-bit alternating sequence
// number.
//
// The [Medium] broadcasts bits from one registered [PhysicalLayer] to
// every other registered [PhysicalLayer]; [NewPerfectMedium] delivers
// bits unchanged while [NewLowNoiseMedium] flips each bit independently
// per recipient with a small probability.
//
// A [DataLinkLayer] runs a busy event loop on its own goroutine: it
// frames outgoing application bytes, transmits them bit by bit, reabuilds
// incoming bytes from the physical layer's bit queue, and dispatches
// completed frames. [PARDataLinkLayer] supplies the framing, parity
// checking, and stop-and-wait sender/receiver state machines described by
// the PAR protocol.
//
// A [Host] wires one [PhysicalLayer] and one [DataLinkLayer] together,
// buffers bytes delivered by the data link layer for the application to
// retrieve, and runs the event loop on its own goroutine until [Host.Stop]
// is called.
package pardll
