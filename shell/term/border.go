package term

import "github.com/pkg/errors"

// LineType selects the box drawing characters used for stroked rectangles
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineHeavy                   // ┏━┓┃┗┛
)

var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

const (
	boxTL = iota
	boxH
	boxTR
	boxV
	boxBL
	boxBR
)

var lineNames = map[string]LineType{
	"":        LineSingle,
	"single":  LineSingle,
	"double":  LineDouble,
	"rounded": LineRounded,
	"heavy":   LineHeavy,
}

// ParseLineType maps a configuration name to a LineType
func ParseLineType(name string) (LineType, error) {
	lt, ok := lineNames[name]
	if !ok {
		return LineSingle, errors.Errorf("unknown border style %q", name)
	}
	return lt, nil
}

func (lt LineType) chars() [6]rune {
	if int(lt) >= len(boxChars) {
		lt = LineSingle
	}
	return boxChars[lt]
}
