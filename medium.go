package pardll

//
// Shared broadcast medium
//

import (
	"math/rand"
	"sync"
	"time"
)

// Medium is a shared broadcast substrate that delivers bits from one
// registered [PhysicalLayer] to every other registered [PhysicalLayer].
// It may corrupt bits in transit depending on the variant.
//
// The zero value is invalid; use a constructor such as [NewPerfectMedium]
// or [NewLowNoiseMedium].
type Medium struct {
	mu        sync.Mutex
	endpoints map[*PhysicalLayer]bool
	corrupt   func(recipient *PhysicalLayer, bit bool) bool
	logger    Logger
}

// newMedium creates a [Medium] with the given per-recipient corruption
// function. corrupt is called once per registered recipient (excluding
// the sender) for every transmitted bit and returns the bit that should
// actually be delivered.
func newMedium(logger Logger, corrupt func(recipient *PhysicalLayer, bit bool) bool) *Medium {
	return &Medium{
		mu:        sync.Mutex{},
		endpoints: map[*PhysicalLayer]bool{},
		corrupt:   corrupt,
		logger:    logger,
	}
}

// NewPerfectMedium creates a [Medium] that delivers every bit unchanged.
func NewPerfectMedium(logger Logger) *Medium {
	return newMedium(logger, func(recipient *PhysicalLayer, bit bool) bool {
		return bit
	})
}

// lowNoiseProbability is the per-recipient bit flip probability used by
// [NewLowNoiseMedium].
const lowNoiseProbability = 0.001

// NewLowNoiseMedium creates a [Medium] that, for each recipient of a
// transmitted bit independently, flips the bit with probability
// [lowNoiseProbability] before delivery. The coin is re-rolled inside the
// per-recipient delivery loop, so a single transmitted bit can be
// delivered flipped to one recipient and unflipped to another.
func NewLowNoiseMedium(logger Logger) *Medium {
	return NewLowNoiseMediumWithRand(logger, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewLowNoiseMediumWithRand is like [NewLowNoiseMedium] but lets the
// caller supply the random source, for deterministic tests. It owns a
// private *rand.Rand guarded by a mutex rather than sharing the
// package-level generator.
func NewLowNoiseMediumWithRand(logger Logger, rnd *rand.Rand) *Medium {
	var mu sync.Mutex
	return newMedium(logger, func(recipient *PhysicalLayer, bit bool) bool {
		mu.Lock()
		flip := rnd.Float64() < lowNoiseProbability
		mu.Unlock()
		if flip {
			return !bit
		}
		return bit
	})
}

// register adds phy to the set of endpoints this medium delivers to.
// Registering the same endpoint twice is a no-op (set semantics).
func (m *Medium) register(phy *PhysicalLayer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endpoints[phy] = true
}

// Transmit broadcasts bit from sender to every other registered
// endpoint. It returns [ErrUnregisteredSender] if sender never
// registered with this medium.
func (m *Medium) Transmit(sender *PhysicalLayer, bit bool) error {
	m.mu.Lock()
	if !m.endpoints[sender] {
		m.mu.Unlock()
		return ErrUnregisteredSender
	}
	recipients := make([]*PhysicalLayer, 0, len(m.endpoints))
	for phy := range m.endpoints {
		if phy != sender {
			recipients = append(recipients, phy)
		}
	}
	m.mu.Unlock()

	for _, recipient := range recipients {
		delivered := m.corrupt(recipient, bit)
		recipient.receive(delivered)
	}
	return nil
}

// mediumConstructors is the compile-time registry mapping a medium
// variant name to its constructor. New variants register themselves
// here rather than being resolved by reflection.
var mediumConstructors = map[string]func(Logger) *Medium{
	"Perfect":  NewPerfectMedium,
	"LowNoise": NewLowNoiseMedium,
}

// NewMedium constructs a [Medium] by variant name, returning
// [ErrUnknownVariant] if name does not match a registered constructor.
func NewMedium(name string, logger Logger) (*Medium, error) {
	ctor, ok := mediumConstructors[name]
	if !ok {
		return nil, wrapUnknownVariant("medium", name)
	}
	return ctor(logger), nil
}

func wrapUnknownVariant(kind, name string) error {
	return &unknownVariantError{kind: kind, name: name}
}

// unknownVariantError reports an unresolved variant name together with
// the kind of variant that was being looked up, while still matching
// [ErrUnknownVariant] via errors.Is.
type unknownVariantError struct {
	kind string
	name string
}

func (e *unknownVariantError) Error() string {
	return ErrUnknownVariant.Error() + ": " + e.kind + " " + e.name
}

func (e *unknownVariantError) Unwrap() error {
	return ErrUnknownVariant
}
