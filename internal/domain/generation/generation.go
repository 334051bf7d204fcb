package generation

import (
	"fmt"
	"strconv"
	"strings"
)

// Generation selects the protocol revision a record belongs to.
type Generation uint8

const (
	Gen4 Generation = 4
	Gen5 Generation = 5
)

func (g Generation) Valid() bool {
	return g == Gen4 || g == Gen5
}

func (g Generation) String() string {
	return "gen" + strconv.Itoa(int(g))
}

// Parse accepts "4", "gen4", "5" or "gen5".
func Parse(s string) (Generation, error) {
	v := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "gen")
	switch v {
	case "4":
		return Gen4, nil
	case "5":
		return Gen5, nil
	default:
		return 0, fmt.Errorf("unknown generation %q", s)
	}
}
