package hart

import "encoding/binary"

// Memory is the hart's L1 collaborator: a fixed-size, flat,
// byte-addressable, little-endian store, consumed through
// Get{8,16,32,64}/Set{8,16,32,64} at arbitrary byte offsets. No alignment
// is required or enforced, and an out-of-bounds access is a host-side
// fault of this collaborator (a panic here, not a Fault) — callers are
// expected to bounds-check against Size before issuing an access that
// could be out of range for their workload.
type Memory struct {
	data []byte
}

// NewMemory allocates a zeroed L1 of the given byte size.
func NewMemory(size uint64) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Size returns the configured byte size of the L1.
func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

// Reset zeroes the L1 in place, preserving its configured size.
func (m *Memory) Reset() {
	for i := range m.data {
		m.data[i] = 0
	}
}

func (m *Memory) bounds(addr, width uint64) {
	if addr+width > uint64(len(m.data)) || addr+width < addr {
		panic("hart: memory access out of bounds")
	}
}

// Get8 reads a single byte at addr.
func (m *Memory) Get8(addr uint64) uint8 {
	m.bounds(addr, 1)
	return m.data[addr]
}

// Set8 writes a single byte at addr.
func (m *Memory) Set8(addr uint64, v uint8) {
	m.bounds(addr, 1)
	m.data[addr] = v
}

// Get16 reads a little-endian 16-bit value at addr.
func (m *Memory) Get16(addr uint64) uint16 {
	m.bounds(addr, 2)
	return binary.LittleEndian.Uint16(m.data[addr : addr+2])
}

// Set16 writes a little-endian 16-bit value at addr.
func (m *Memory) Set16(addr uint64, v uint16) {
	m.bounds(addr, 2)
	binary.LittleEndian.PutUint16(m.data[addr:addr+2], v)
}

// Get32 reads a little-endian 32-bit value at addr.
func (m *Memory) Get32(addr uint64) uint32 {
	m.bounds(addr, 4)
	return binary.LittleEndian.Uint32(m.data[addr : addr+4])
}

// Set32 writes a little-endian 32-bit value at addr.
func (m *Memory) Set32(addr uint64, v uint32) {
	m.bounds(addr, 4)
	binary.LittleEndian.PutUint32(m.data[addr:addr+4], v)
}

// Get64 reads a little-endian 64-bit value at addr.
func (m *Memory) Get64(addr uint64) uint64 {
	m.bounds(addr, 8)
	return binary.LittleEndian.Uint64(m.data[addr : addr+8])
}

// Set64 writes a little-endian 64-bit value at addr.
func (m *Memory) Set64(addr uint64, v uint64) {
	m.bounds(addr, 8)
	binary.LittleEndian.PutUint64(m.data[addr:addr+8], v)
}

// LoadBytes copies data into the L1 starting at addr.
func (m *Memory) LoadBytes(addr uint64, data []byte) {
	m.bounds(addr, uint64(len(data)))
	copy(m.data[addr:], data)
}
