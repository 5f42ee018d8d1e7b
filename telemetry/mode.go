package telemetry

// Mode is the CORDIC function that produced a frame.
type Mode int

// Modes in the order the hardware numbers them.
const (
	Disabled Mode = iota
	SinCos
	SinhCosh
	Exp
	Ln
	Arctanh

	// Unknown is a tag letter outside the known set. Its results are not
	// interpreted.
	Unknown Mode = -1
)

type modeInfo struct {
	tag     byte
	name    string
	outputs int
}

var modes = map[Mode]modeInfo{
	Disabled: {'D', "Disabled", 1},
	SinCos:   {'S', "Sin/Cos", 2},
	SinhCosh: {'H', "Sinh/Cosh", 2},
	Exp:      {'E', "Exp", 1},
	Ln:       {'L', "Ln", 1},
	Arctanh:  {'A', "Arctanh", 1},
}

// ModeFromTag maps a tag letter to its mode.
func ModeFromTag(tag byte) Mode {
	for m, info := range modes {
		if info.tag == tag {
			return m
		}
	}

	return Unknown
}

// Tag returns the tag letter, or 0 for Unknown.
func (m Mode) Tag() byte {
	return modes[m].tag
}

// Outputs returns how many result fields the mode requires.
func (m Mode) Outputs() int {
	return modes[m].outputs
}

func (m Mode) String() string {
	if info, ok := modes[m]; ok {
		return info.name
	}

	return "Unknown"
}
