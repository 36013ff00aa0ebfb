package printer

import "github.com/carlaolanches/printer-server/internal/receipt"

// ESC/POS command bytes for Epson-compatible thermal printers.
var (
	escInit     = []byte{0x1b, 0x40}             // ESC @  reset formatting
	escAlignL   = []byte{0x1b, 0x61, 0x00}       // ESC a 0
	escAlignC   = []byte{0x1b, 0x61, 0x01}       // ESC a 1
	escFeedCut  = []byte{0x1d, 0x56, 0x42, 0x00} // GS V B 0  feed and partial cut
	escLineFeed = []byte{0x0a}
)

// Encode translates an instruction sequence into the raw ESC/POS byte
// stream the printer consumes. The stream always starts with a reset so a
// previous job's alignment state cannot leak into this receipt.
func Encode(ins []receipt.Instruction) []byte {
	out := make([]byte, 0, 64)
	out = append(out, escInit...)

	for _, in := range ins {
		switch in.Op {
		case receipt.OpAlignCenter:
			out = append(out, escAlignC...)
		case receipt.OpAlignLeft:
			out = append(out, escAlignL...)
		case receipt.OpLine:
			out = append(out, []byte(in.Text)...)
			out = append(out, escLineFeed...)
		case receipt.OpBlankLine:
			out = append(out, escLineFeed...)
		case receipt.OpCut:
			out = append(out, escFeedCut...)
		}
	}
	return out
}
