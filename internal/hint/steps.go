package hint

import "unicode"

// Step is one relative move directive.
type Step byte

// Recognised steps. Compass letters are aliases: n=u, s=d, w=l, e=r.
const (
	StepUp        Step = 'u'
	StepDown      Step = 'd'
	StepLeft      Step = 'l'
	StepRight     Step = 'r'
	StepInsertRow Step = 'h'
	StepInsertCol Step = 'v'
	StepPrint     Step = 'p'
)

var stepAliases = map[rune]Step{
	'u': StepUp, 'n': StepUp,
	'd': StepDown, 's': StepDown,
	'l': StepLeft, 'w': StepLeft,
	'r': StepRight, 'e': StepRight,
	'h': StepInsertRow,
	'v': StepInsertCol,
	'p': StepPrint,
}

// Delta returns the row and column offset of a cursor step. Steps that do
// not move the cursor return (0, 0).
func (s Step) Delta() (dRow, dCol int) {
	switch s {
	case StepUp:
		return -1, 0
	case StepDown:
		return 1, 0
	case StepLeft:
		return 0, -1
	case StepRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// ParseSteps splits a step string into steps. Letters are case-insensitive
// and whitespace is ignored; any other unrecognised character is returned in
// unknown, in order.
func ParseSteps(s string) (steps []Step, unknown []rune) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if st, ok := stepAliases[unicode.ToLower(r)]; ok {
			steps = append(steps, st)
			continue
		}
		unknown = append(unknown, r)
	}
	return steps, unknown
}
