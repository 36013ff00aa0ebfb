// Package receipt turns an order record into the instruction sequence a
// thermal printer understands. Rendering is pure: same record in, same
// instructions out, no clock and no device involved.
package receipt

// Op identifies one kind of printable instruction.
type Op string

const (
	OpAlignCenter Op = "align_center"
	OpAlignLeft   Op = "align_left"
	OpLine        Op = "line"
	OpBlankLine   Op = "blank_line"
	OpCut         Op = "cut"
)

// Instruction is one step of a receipt. Text is set only for OpLine.
type Instruction struct {
	Op   Op
	Text string
}

func AlignCenter() Instruction { return Instruction{Op: OpAlignCenter} }
func AlignLeft() Instruction   { return Instruction{Op: OpAlignLeft} }
func Line(text string) Instruction {
	return Instruction{Op: OpLine, Text: text}
}
func BlankLine() Instruction { return Instruction{Op: OpBlankLine} }
func Cut() Instruction       { return Instruction{Op: OpCut} }
