package overlay

import "github.com/lixenwraith/replay/core"

// digitRows is a 3x5 bitmap per digit, enough for jersey numbers without
// pulling in a font stack. Each row is 3 bits, MSB leftmost
var digitRows = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b010, 0b010, 0b010}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

const (
	digitW = 3
	digitH = 5
)

// drawLabel renders a numeric label above (cx, cy). Non-digit runes are
// skipped; tracking labels are jersey numbers in practice
func drawLabel(buf *core.PixelBuffer, label string, cx, cy int, color core.RGB, alpha float64) {
	digits := make([]int, 0, len(label))
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) == 0 {
		return
	}

	totalW := len(digits)*(digitW+1) - 1
	x := cx - totalW/2
	y := cy

	for _, d := range digits {
		rows := digitRows[d]
		for ry := 0; ry < digitH; ry++ {
			for rx := 0; rx < digitW; rx++ {
				if rows[ry]&(1<<(digitW-1-rx)) != 0 {
					BlendAt(buf, x+rx, y+ry, BlendNormal, color, alpha)
				}
			}
		}
		x += digitW + 1
	}
}
