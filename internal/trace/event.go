package trace

import "github.com/thelolagemann/sm83/internal/cpu"

// Event is the JSON form of a single executed step.
type Event struct {
	PC     uint16 `json:"pc"`
	Opcode uint8  `json:"opcode"`
	Name   string `json:"name"`
	Regs   string `json:"regs"`
	Mode   string `json:"mode"`
}

// NewEvent converts a cpu.Trace to an Event.
func NewEvent(t cpu.Trace) Event {
	return Event{
		PC:     t.PC,
		Opcode: t.Opcode,
		Name:   t.Name,
		Regs:   t.Registers.String(),
		Mode:   t.Mode.String(),
	}
}
