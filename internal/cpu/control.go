package cpu

// halt suspends the CPU until an interrupt is pending.
//
//	HALT
//
// With IME set (or about to be set by EI) the CPU enters
// ModeHalt. With IME clear and nothing pending, HALT does
// nothing. With IME clear and an interrupt pending, the
// following opcode is executed without its byte being
// consumed, so it is read twice.
func (c *CPU) halt() {
	switch {
	case c.IME || c.imeDelay > 0:
		c.mode = ModeHalt
	case c.hasInterrupts():
		c.mode = ModeHaltBug
	}
}

func init() {
	define(0x00, "NOP", 1, func(c *CPU) {})
	define(0x76, "HALT", 1, (*CPU).halt)
	define(0xF3, "DI", 1, func(c *CPU) {
		c.IME = false
		c.imeDelay = 0
	})
	define(0xFB, "EI", 1, func(c *CPU) {
		if !c.IME {
			// IME is set once the next instruction has executed
			c.imeDelay = 2
		}
	})

	// STOP waits for a joypad press, which is not emulated
	defineRaw(0x10, Instruction{
		name:   "STOP",
		length: 2,
		fn:     func(c *CPU) { c.AdvancePC(2) },
		err:    ErrUnimplemented,
	})
	defineRaw(0xCB, Instruction{name: "PREFIX CB", length: 2, err: ErrUnimplemented})

	for _, opcode := range undefinedOpcodes {
		defineRaw(opcode, Instruction{name: "undefined", length: 1, err: ErrUndefinedOpcode})
	}
}
