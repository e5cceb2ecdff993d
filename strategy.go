package halftone

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/halftone/internal/scan"
)

// Strategy selects the order in which pixels are visited.
type Strategy uint8

const (
	// Raster visits rows top to bottom, each left to right.
	Raster Strategy = iota

	// Serpentine alternates direction on every row (boustrophedon).
	Serpentine

	// Hilbert follows the Hilbert space-filling curve.
	Hilbert

	// Spiral walks concentric rings from the border inward, clockwise.
	Spiral

	strategyCount
)

// strategyTable is the dispatch table: one visitor per strategy.
var strategyTable = [strategyCount]struct {
	name  string
	visit scan.Visitor
}{
	Raster:     {"raster", scan.Raster},
	Serpentine: {"serpentine", scan.Serpentine},
	Hilbert:    {"hilbert", scan.Hilbert},
	Spiral:     {"spiral", scan.Spiral},
}

// strategyAliases maps accepted alternative names to strategies.
var strategyAliases = map[string]Strategy{
	"unidirecional": Raster,
	"alternada":     Serpentine,
	"boustrophedon": Serpentine,
	"espiral":       Spiral,
}

// String returns the canonical strategy name.
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
	return strategyTable[s].name
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	return s < strategyCount
}

// ParseStrategy returns the strategy with the given name. Canonical names and
// aliases are accepted in any case.
func ParseStrategy(name string) (Strategy, error) {
	key := cases.Lower(language.Und).String(strings.TrimSpace(name))
	for s, e := range strategyTable {
		if e.name == key {
			return Strategy(s), nil
		}
	}
	if s, ok := strategyAliases[key]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Strategies returns the canonical strategy names in declaration order.
func Strategies() []string {
	names := make([]string, 0, strategyCount)
	for _, e := range strategyTable {
		names = append(names, e.name)
	}
	return names
}

// Set parses name into s. It lets a *Strategy be used with flag.Var.
func (s *Strategy) Set(name string) error {
	v, err := ParseStrategy(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}
