package editor

type mode uint8

const (
	normal mode = iota
	insert
	replace
	search
)

func (m mode) String() string {
	switch m {
	case insert:
		return "INSERT"
	case replace:
		return "REPLACE"
	case search:
		return "SEARCH"
	default:
		return "NORMAL"
	}
}

func (m mode) ShortString() string {
	switch m {
	case insert:
		return "i"
	case replace:
		return "r"
	case search:
		return "s"
	default:
		return "n"
	}
}
