package mmu

// The stack grows downwards through the regular address space,
// using the CPU's SP register. A push decrements SP and then
// writes, a pop reads and then increments SP. Words are pushed
// high byte first, leaving them little-endian in memory.

// Push8 pushes value onto the stack addressed by sp.
func (m *MMU) Push8(sp *uint16, value uint8) {
	*sp--
	m.Write(*sp, value)
}

// Push16 pushes value onto the stack addressed by sp.
func (m *MMU) Push16(sp *uint16, value uint16) {
	m.Push8(sp, uint8(value>>8))
	m.Push8(sp, uint8(value))
}

// Pop8 pops a byte from the stack addressed by sp.
func (m *MMU) Pop8(sp *uint16) uint8 {
	value := m.Read(*sp)
	*sp++
	return value
}

// Pop16 pops a word from the stack addressed by sp.
func (m *MMU) Pop16(sp *uint16) uint16 {
	low := m.Pop8(sp)
	high := m.Pop8(sp)
	return uint16(high)<<8 | uint16(low)
}
