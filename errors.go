package pardll

import "errors"

// ErrUnregisteredSender indicates that a [PhysicalLayer] attempted to
// transmit a bit through a [Medium] it never registered with.
var ErrUnregisteredSender = errors.New("pardll: sender not registered with this medium")

// ErrDoubleRegistration indicates that more than one [DataLinkLayer]
// attempted to claim the same [PhysicalLayer], or that a variant factory
// was otherwise misconfigured.
var ErrDoubleRegistration = errors.New("pardll: physical layer already has a registered client")

// ErrUnknownVariant indicates that a requested medium or data link layer
// variant name does not match any registered constructor.
var ErrUnknownVariant = errors.New("pardll: unknown variant")

// ErrIOFailure indicates that a payload file could not be read, or was
// larger than the simulator is willing to load into memory.
var ErrIOFailure = errors.New("pardll: I/O failure loading payload")

// ErrDamagedFrame indicates a parity mismatch detected while deframing.
// The frame that triggered this error has already been discarded from
// the receive buffer; the sender's retransmission timeout recovers it.
var ErrDamagedFrame = errors.New("pardll: damaged frame (parity mismatch)")

// ErrTimerNotStarted indicates an internal consistency violation: the
// retransmission timer's duration was queried while the timer was not
// running. This is a programmer error, not a protocol condition.
var ErrTimerNotStarted = errors.New("pardll: timer not started")
