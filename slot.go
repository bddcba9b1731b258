package tileatlas

// Slot is the 32-bit runtime reference to an image in a packed atlas.
//
// The low 16 bits hold the 1-based slot index, 0 meaning empty. The high 16
// bits hold animation metadata: frame count in bits 0-3, frame duration in
// bits 4-7 and frame delay in bits 8-11.
//
// The setters store 4 bits of each animation field, but FrameDuration reads
// back only 2 bits and FrameDelay reads 8. Both widths are kept as they are
// until the intended frame duration range is settled; a duration of 4 or more
// does not round-trip.
type Slot struct {
	slot uint16
	anim uint16
}

// EmptySlot references nothing.
var EmptySlot = Slot{}

// NewSlot returns a slot referencing the 0-based atlas index.
// Returns false if index is 0xFFFF, which has no 1-based encoding.
func NewSlot(index uint16) (Slot, bool) {
	if index == 0xFFFF {
		return EmptySlot, false
	}
	return Slot{slot: index + 1}, true
}

// NewSlotUnchecked is NewSlot without the range check; 0xFFFF wraps to the
// empty slot.
func NewSlotUnchecked(index uint16) Slot {
	return Slot{slot: index + 1}
}

// SlotFromBits decodes a slot from its packed 32-bit form.
func SlotFromBits(v uint32) Slot {
	return Slot{slot: uint16(v), anim: uint16(v >> 16)}
}

// Bits returns the packed 32-bit form.
func (s Slot) Bits() uint32 {
	return uint32(s.slot) | uint32(s.anim)<<16
}

// WithAnimation returns a copy with all animation fields replaced.
func (s Slot) WithAnimation(frameCount, frameDuration, frameDelay uint16) Slot {
	s.anim = (frameCount & 0x000F) |
		((frameDuration & 0x000F) << 4) |
		((frameDelay & 0x000F) << 8)
	return s
}

// WithFrameCount returns a copy with the frame count replaced.
func (s Slot) WithFrameCount(frameCount uint16) Slot {
	return s.WithAnimation(frameCount, s.FrameDuration(), s.FrameDelay())
}

// WithFrameDuration returns a copy with the frame duration replaced.
func (s Slot) WithFrameDuration(frameDuration uint16) Slot {
	return s.WithAnimation(s.FrameCount(), frameDuration, s.FrameDelay())
}

// WithFrameDelay returns a copy with the frame delay replaced.
func (s Slot) WithFrameDelay(frameDelay uint16) Slot {
	return s.WithAnimation(s.FrameCount(), s.FrameDuration(), frameDelay)
}

// Index returns the 0-based atlas index, or false for the empty slot.
func (s Slot) Index() (uint16, bool) {
	if s.slot == 0 {
		return 0, false
	}
	return s.slot - 1, true
}

// IsEmpty reports whether the slot references nothing.
func (s Slot) IsEmpty() bool {
	return s.slot == 0
}

// FrameCount returns the number of animation frames.
func (s Slot) FrameCount() uint16 {
	return s.anim & 0x000F
}

// FrameDuration returns the animation frame duration.
func (s Slot) FrameDuration() uint16 {
	return (s.anim >> 4) & 0x0003
}

// FrameDelay returns the animation start delay.
func (s Slot) FrameDelay() uint16 {
	return (s.anim >> 8) & 0x00FF
}
