package pardll

//
// PAR byte-stuffed framing and parity
//

const (
	// startTag marks the beginning of a frame on the wire.
	startTag byte = 0x7B // '{'

	// stopTag marks the end of a frame on the wire.
	stopTag byte = 0x7D // '}'

	// escapeTag precedes any payload byte that collides with a tag.
	escapeTag byte = 0x5C // '\\'

	// acknowledgmentTag is the sole payload byte of an ACK frame.
	acknowledgmentTag byte = 0x06
)

// isTag reports whether b collides with one of the three framing tags
// and therefore needs escaping when it appears in a payload.
func isTag(b byte) bool {
	return b == startTag || b == stopTag || b == escapeTag
}

// parity computes the XOR of every bit across data, reduced modulo 2 and
// packed as 0x00 or 0x01. It does not include its own result in the
// computation: the parity byte is deliberately excluded from the parity
// calculation, matching the wire format this implementation preserves.
func parity(data []byte) byte {
	var acc byte
	for _, b := range data {
		for i := 0; i < 8; i++ {
			acc ^= (b >> uint(i)) & 1
		}
	}
	return acc & 1
}

// stuff appends b to out, preceding it with escapeTag first if it
// collides with a framing tag.
func stuff(out []byte, b byte) []byte {
	if isTag(b) {
		out = append(out, escapeTag)
	}
	return append(out, b)
}

// createDataFrame frames data (1..MaxFrameSize application bytes) and
// seq (0 or 1): payload is data ∥ seq, parity is computed over that
// concatenation, and the whole payload region (including the trailing
// seq byte) is byte-stuffed. The parity byte itself is never escaped
// because it is always 0x00 or 0x01.
func createDataFrame(data []byte, seq byte) []byte {
	payload := make([]byte, 0, len(data)+1)
	payload = append(payload, data...)
	payload = append(payload, seq)
	p := parity(payload)

	frame := make([]byte, 0, len(payload)*2+3)
	frame = append(frame, startTag)
	for _, b := range payload {
		frame = stuff(frame, b)
	}
	frame = stuff(frame, p)
	frame = append(frame, stopTag)
	return frame
}

// createAckFrame returns the fixed three-byte ACK frame.
func createAckFrame() []byte {
	return []byte{startTag, acknowledgmentTag, stopTag}
}

// deframeResult is the outcome of scanning a receive buffer for a
// complete frame.
type deframeResult int

const (
	deframeNone deframeResult = iota
	deframeAck
	deframeData
	deframeDamaged
)

// deframe scans buf for the first complete frame. On deframeAck,
// deframeData and deframeDamaged the frame's bytes, and everything
// before it, have already been removed from buf. On deframeNone, buf
// keeps the bytes from the last start tag seen onward: anything before
// it (or the whole buffer, when there is no start tag) is discarded,
// and an empty frame with nothing between its tags is consumed as
// well. extracted holds, for
// deframeAck, the single ACK tag byte, and for deframeData, seq
// followed by the application bytes (seq rotated to the front).
func deframe(buf *[]byte) (result deframeResult, extracted []byte) {
	data := *buf

	// Skip and discard leading bytes until a start tag is found.
	startIdx := -1
	for i, b := range data {
		if b == startTag {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		*buf = nil
		return deframeNone, nil
	}
	data = data[startIdx:]

	cursor := 1
	var acc []byte

	for cursor < len(data) {
		b := data[cursor]
		switch {
		case b == escapeTag:
			if cursor+1 >= len(data) {
				// No successor buffered yet; commit whatever garbage a
				// prior restart already discarded, but go no further.
				*buf = append([]byte{}, data...)
				return deframeNone, nil
			}
			acc = append(acc, data[cursor+1])
			cursor += 2

		case b == stopTag:
			*buf = append([]byte{}, data[cursor+1:]...)
			return classifyExtraction(acc)

		case b == startTag:
			// The prior extraction is corrupt; discard it and restart
			// from this new start tag.
			data = data[cursor:]
			cursor = 1
			acc = nil

		default:
			acc = append(acc, b)
			cursor++
		}
	}

	// Ran off the end of the buffer without a stop tag: nothing decisive
	// yet, but drop the garbage that precedes the (possibly new) start tag.
	*buf = append([]byte{}, data...)
	return deframeNone, nil
}

// classifyExtraction classifies the bytes extracted from between a
// start and stop tag once a frame boundary has been found.
func classifyExtraction(extracted []byte) (deframeResult, []byte) {
	switch {
	case len(extracted) == 0:
		// An empty escaped frame: treat as "no frame".
		return deframeNone, nil

	case len(extracted) == 1:
		return deframeAck, extracted

	default:
		payload, receivedParity := extracted[:len(extracted)-1], extracted[len(extracted)-1]
		if parity(payload) != receivedParity {
			return deframeDamaged, nil
		}
		seq := payload[len(payload)-1]
		d := payload[:len(payload)-1]
		out := make([]byte, 0, len(d)+1)
		out = append(out, seq)
		out = append(out, d...)
		return deframeData, out
	}
}
