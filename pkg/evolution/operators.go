package evolution

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/variantlab/evolve-go/pkg/schema"
)

// mutateParams perturbs each parameter independently with probability rate,
// using the type-specific operator declared by the method schema. It returns
// the mutated copy plus the diff between pre- and post-mutation values.
// Parameters not selected for mutation, and parameters whose declared type
// has no mutation operator, pass through unchanged.
//
// Keys are visited in sorted order so a fixed random source reproduces an
// identical sequence of genomes.
func mutateParams(params map[string]interface{}, method *schema.MethodSchema, rate float64, rng *rand.Rand) (map[string]interface{}, []Mutation) {
	mutated := copyParams(params)
	mutations := []Mutation{}

	for _, name := range sortedKeys(params) {
		if rng.Float64() >= rate {
			continue
		}

		def, ok := method.Parameter(name)
		if !ok {
			continue
		}

		oldValue := mutated[name]
		newValue, changed := mutateValue(oldValue, def, rng)
		if !changed {
			continue
		}

		mutated[name] = newValue
		mutations = append(mutations, Mutation{
			Parameter: name,
			FromValue: oldValue,
			ToValue:   newValue,
			Type:      mutationTypeRandom,
		})
	}

	return mutated, mutations
}

// mutateValue applies the type-specific perturbation for one parameter.
func mutateValue(value interface{}, def schema.ParameterDefinition, rng *rand.Rand) (interface{}, bool) {
	switch def.Type {
	case schema.Categorical:
		return mutateCategorical(value, def, rng)
	case schema.Numeric:
		return mutateNumeric(value, def, rng)
	case schema.Color:
		return mutateColor(value, rng)
	default:
		return value, false
	}
}

// mutateCategorical resamples uniformly from the declared option list. A full
// resample rather than a nudge: categorical mutation is an intentional large
// jump.
func mutateCategorical(value interface{}, def schema.ParameterDefinition, rng *rand.Rand) (interface{}, bool) {
	if len(def.Options) == 0 {
		return value, false
	}
	picked := def.Options[rng.Intn(len(def.Options))]
	if picked == value {
		return value, false
	}
	return picked, true
}

// mutateNumeric applies a relative jitter of up to ±NumericJitter of the
// current value, rounded to the nearest integer step. When the schema
// declares a min/max range the result is clamped into it.
func mutateNumeric(value interface{}, def schema.ParameterDefinition, rng *rand.Rand) (interface{}, bool) {
	old, ok := toFloat(value)
	if !ok {
		return value, false
	}

	jittered := math.Round(old + old*NumericJitter*(2*rng.Float64()-1))
	if def.Min != nil && jittered < *def.Min {
		jittered = *def.Min
	}
	if def.Max != nil && jittered > *def.Max {
		jittered = *def.Max
	}

	if jittered == old {
		return value, false
	}
	return jittered, true
}

// mutateColor replaces the value with a color at a freshly sampled hue at
// fixed saturation and lightness, discarding the previous hue entirely.
func mutateColor(value interface{}, rng *rand.Rand) (interface{}, bool) {
	hue := rng.Float64() * 360
	picked := hslToHex(hue, colorSaturation, colorLightness)
	if picked == value {
		return value, false
	}
	return picked, true
}

// hslToHex converts an HSL color (h in degrees, s and l in [0,1]) into a
// lowercase #rrggbb string.
func hslToHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round((r+m)*255)),
		int(math.Round((g+m)*255)),
		int(math.Round((b+m)*255)))
}

// toFloat widens the numeric types a parameter map can plausibly carry,
// including float64 from JSON decoding.
func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// sortedKeys returns the map keys in sorted order for deterministic
// iteration.
func sortedKeys(params map[string]interface{}) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
