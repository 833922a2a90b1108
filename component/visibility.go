package component

// Visibility controls whether an entity takes space and is drawn
type Visibility uint8

const (
	Visible   Visibility = iota // Measured, arranged, rendered, hit-tested
	Hidden                      // Measured and arranged, not rendered or hit-tested
	Collapsed                   // Zero size, subtree skipped everywhere
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Collapsed:
		return "collapsed"
	default:
		return "visible"
	}
}
