package kernel

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// None is the registry name that selects no kernel: plain thresholding
// without error diffusion.
const None = "NONE"

type entry struct {
	name    string
	total   float64
	weights [][]float64
}

// builtin lists the registered kernels. Names joined by '_' are also
// reachable by each part (FLOYD_STEINBERG, FLOYD, STEINBERG).
var builtin = []entry{
	{"FLOYD_STEINBERG", 16, [][]float64{
		{0, 0, 7},
		{3, 5, 1},
	}},
	{"STEVENSON_ARCE", 200, [][]float64{
		{0, 0, 0, 0, 0, 32, 0},
		{12, 0, 26, 0, 30, 0, 16},
		{0, 12, 0, 26, 0, 12, 0},
		{5, 0, 12, 0, 12, 0, 5},
	}},
	{"BURKES", 32, [][]float64{
		{0, 0, 0, 8, 4},
		{2, 4, 8, 4, 2},
	}},
	{"SIERRA", 32, [][]float64{
		{0, 0, 0, 5, 3},
		{2, 4, 5, 4, 2},
		{0, 2, 3, 2, 0},
	}},
	{"STUCKI", 42, [][]float64{
		{0, 0, 0, 8, 4},
		{2, 4, 8, 4, 2},
		{1, 2, 4, 2, 1},
	}},
	{"JARVIS_JUDICE_NINKE", 48, [][]float64{
		{0, 0, 0, 7, 5},
		{3, 5, 7, 5, 3},
		{1, 3, 5, 3, 1},
	}},
}

// registry is built once at package initialization and never written again.
var registry, canonical = buildRegistry()

func buildRegistry() (map[string]*Kernel, []string) {
	reg := make(map[string]*Kernel)
	names := []string{None}
	for _, e := range builtin {
		k := MustNormalize(e.name, e.weights, e.total)
		reg[e.name] = k
		for _, part := range strings.Split(e.name, "_") {
			reg[part] = k
		}
		names = append(names, e.name)
	}
	slices.Sort(names)
	return reg, names
}

var separators = strings.NewReplacer("-", "_", " ", "_")

// canonicalName upper-cases name and maps '-' and ' ' to '_'.
// A Caser is stateful, so each call builds its own.
func canonicalName(name string) string {
	name = separators.Replace(strings.TrimSpace(name))
	return cases.Upper(language.Und).String(name)
}

// Lookup returns the registered kernel for name. Matching ignores case and
// treats '-' and ' ' like '_'. The name NONE returns (nil, nil).
func Lookup(name string) (*Kernel, error) {
	key := canonicalName(name)
	if key == None {
		return nil, nil
	}
	k, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
	return k, nil
}

// Names returns the sorted canonical kernel names, including NONE.
func Names() []string {
	return slices.Clone(canonical)
}

// All returns every registered kernel once, in canonical name order.
func All() []*Kernel {
	out := make([]*Kernel, 0, len(builtin))
	for _, name := range canonical {
		if name == None {
			continue
		}
		out = append(out, registry[name])
	}
	return out
}
