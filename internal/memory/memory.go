// Package memory implements a byte-addressable, big-endian storage
// region: the building block the bus maps ROM, RAM, and NVRAM onto.
package memory

import "fmt"

// ErrOutOfRange is returned when an offset falls outside the region.
type ErrOutOfRange struct {
	Offset uint32
	Size   uint32
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("memory: offset %#x out of range (size %#x)", e.Offset, e.Size)
}

// ErrReadOnly is returned when a write targets a read-only region.
type ErrReadOnly struct {
	Offset uint32
}

func (e *ErrReadOnly) Error() string {
	return fmt.Sprintf("memory: write to read-only region at offset %#x", e.Offset)
}

// Region is a flat byte-addressable range of storage. All multi-byte
// operations are big-endian: the most significant byte lives at the
// lowest offset.
type Region struct {
	ram      []byte
	readOnly bool
}

// New allocates a zeroed region of the given size.
func New(size uint32, readOnly bool) *Region {
	return &Region{ram: make([]byte, size), readOnly: readOnly}
}

// Size returns the region's length in bytes.
func (r *Region) Size() uint32 { return uint32(len(r.ram)) }

func (r *Region) bounds(off uint32, width uint32) error {
	if uint64(off)+uint64(width) > uint64(len(r.ram)) {
		return &ErrOutOfRange{Offset: off, Size: r.Size()}
	}
	return nil
}

// ReadByte returns the byte at off.
func (r *Region) ReadByte(off uint32) (byte, error) {
	if err := r.bounds(off, 1); err != nil {
		return 0, err
	}
	return r.ram[off], nil
}

// ReadHalf returns the big-endian half-word at off.
func (r *Region) ReadHalf(off uint32) (uint16, error) {
	if err := r.bounds(off, 2); err != nil {
		return 0, err
	}
	return uint16(r.ram[off])<<8 | uint16(r.ram[off+1]), nil
}

// ReadWord returns the big-endian word at off.
func (r *Region) ReadWord(off uint32) (uint32, error) {
	if err := r.bounds(off, 4); err != nil {
		return 0, err
	}
	return uint32(r.ram[off])<<24 | uint32(r.ram[off+1])<<16 |
		uint32(r.ram[off+2])<<8 | uint32(r.ram[off+3]), nil
}

// WriteByte stores a byte at off. Fails on a read-only region.
func (r *Region) WriteByte(off uint32, v byte) error {
	if err := r.bounds(off, 1); err != nil {
		return err
	}
	if r.readOnly {
		return &ErrReadOnly{Offset: off}
	}
	r.ram[off] = v
	return nil
}

// WriteHalf stores a big-endian half-word at off. Fails on a
// read-only region.
func (r *Region) WriteHalf(off uint32, v uint16) error {
	if err := r.bounds(off, 2); err != nil {
		return err
	}
	if r.readOnly {
		return &ErrReadOnly{Offset: off}
	}
	r.ram[off] = byte(v >> 8)
	r.ram[off+1] = byte(v)
	return nil
}

// WriteWord stores a big-endian word at off. Fails on a read-only
// region.
func (r *Region) WriteWord(off uint32, v uint32) error {
	if err := r.bounds(off, 4); err != nil {
		return err
	}
	if r.readOnly {
		return &ErrReadOnly{Offset: off}
	}
	r.ram[off] = byte(v >> 24)
	r.ram[off+1] = byte(v >> 16)
	r.ram[off+2] = byte(v >> 8)
	r.ram[off+3] = byte(v)
	return nil
}

// Load copies data into the region starting at off, bypassing the
// read-only flag. Used to install ROM images and restore NVRAM at
// startup.
func (r *Region) Load(off uint32, data []byte) error {
	if err := r.bounds(off, uint32(len(data))); err != nil {
		return err
	}
	copy(r.ram[off:], data)
	return nil
}

// Bytes returns the region's backing slice directly, for callers that
// need a reference-semantics view (e.g. the video RAM slice handed out
// by the bus).
func (r *Region) Bytes() []byte { return r.ram }

// ReadOnly reports whether writes to this region are rejected.
func (r *Region) ReadOnly() bool { return r.readOnly }
