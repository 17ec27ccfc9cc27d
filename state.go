package spooky

import "encoding/binary"

// State is an explicit, host-serializable snapshot of a Hasher: the
// fifteen fields documented as the persisted layout — the 24 little-endian
// u64 words of buf, the twelve accumulators s0..s11, and the length and
// remainder counters. Restoring these fields to a Hasher via RestoreState
// is sufficient to resume a stream exactly where it left off.
//
// Length is carried as a 64-bit value rather than the 32-bit field of the
// original layout; Remainder stays 32-bit. See DESIGN.md for the rationale.
type State struct {
	Buf       [BufSize / 8]uint64
	S         [numVars]uint64
	Length    uint64
	Remainder int32
}

// StateSize is the encoded byte length of a marshaled State.
const StateSize = (BufSize/8+numVars)*8 + 8 + 4

// State captures a snapshot of h suitable for serialization and later
// resumption via RestoreState.
func (h *Hasher) State() State {
	var st State
	for i := range st.Buf {
		st.Buf[i] = binary.LittleEndian.Uint64(h.buf[i*8:])
	}
	st.S = h.s
	st.Length = h.length
	st.Remainder = int32(h.remainder)
	return st
}

// RestoreState replaces h's state with a previously captured snapshot.
func (h *Hasher) RestoreState(st State) {
	for i, word := range st.Buf {
		binary.LittleEndian.PutUint64(h.buf[i*8:], word)
	}
	h.s = st.S
	h.length = st.Length
	h.remainder = int(st.Remainder)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (st State) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, StateSize)
	for _, word := range st.Buf {
		out = binary.LittleEndian.AppendUint64(out, word)
	}
	for _, word := range st.S {
		out = binary.LittleEndian.AppendUint64(out, word)
	}
	out = binary.LittleEndian.AppendUint64(out, st.Length)
	out = binary.LittleEndian.AppendUint32(out, uint32(st.Remainder))
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (st *State) UnmarshalBinary(data []byte) error {
	if len(data) != StateSize {
		return ErrRangeOutOfBounds
	}
	off := 0
	for i := range st.Buf {
		st.Buf[i] = binary.LittleEndian.Uint64(data[off:])
		off += 8
	}
	for i := range st.S {
		st.S[i] = binary.LittleEndian.Uint64(data[off:])
		off += 8
	}
	st.Length = binary.LittleEndian.Uint64(data[off:])
	off += 8
	st.Remainder = int32(binary.LittleEndian.Uint32(data[off:]))
	return nil
}
