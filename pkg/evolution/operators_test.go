package evolution

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/evolve-go/internal/testutil"
)

func TestMutateParamsRateZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	params := testutil.BannerParams()

	mutated, mutations := mutateParams(params, testutil.BannerSchema(), 0, rng)

	assert.Equal(t, params, mutated)
	assert.Empty(t, mutations)
}

func TestMutateParamsRecordsDiff(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	method := testutil.BannerSchema()
	params := testutil.BannerParams()

	sawChange := false
	for i := 0; i < 100; i++ {
		mutated, mutations := mutateParams(params, method, 1.0, rng)

		// Every recorded mutation must describe an actual change.
		for _, m := range mutations {
			sawChange = true
			assert.Equal(t, mutationTypeRandom, m.Type)
			assert.Equal(t, params[m.Parameter], m.FromValue)
			assert.Equal(t, mutated[m.Parameter], m.ToValue)
			assert.NotEqual(t, serializeValue(m.FromValue), serializeValue(m.ToValue))
		}

		// Unchanged parameters never show up in the diff.
		recorded := make(map[string]bool)
		for _, m := range mutations {
			recorded[m.Parameter] = true
		}
		for name, v := range params {
			if !recorded[name] {
				assert.Equal(t, v, mutated[name])
			}
		}

		// The source map is never modified.
		assert.Equal(t, testutil.BannerParams(), params)
	}
	assert.True(t, sawChange, "mutation at rate 1.0 should change something over 100 runs")
}

func TestMutateParamsLeavesOtherTypeUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	method := testutil.BannerSchema()
	params := testutil.BannerParams()

	for i := 0; i < 50; i++ {
		mutated, _ := mutateParams(params, method, 1.0, rng)
		assert.Equal(t, "Summer Sale", mutated["headline"])
	}
}

func TestMutateParamsIgnoresUndeclaredKeys(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	params := map[string]interface{}{"custom_knob": "untyped"}

	for i := 0; i < 20; i++ {
		mutated, mutations := mutateParams(params, testutil.BannerSchema(), 1.0, rng)
		assert.Equal(t, "untyped", mutated["custom_knob"])
		assert.Empty(t, mutations)
	}
}

func TestMutateCategoricalResamplesFromOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	method := testutil.BannerSchema()
	def, ok := method.Parameter("style")
	require.True(t, ok)

	for i := 0; i < 100; i++ {
		value, changed := mutateCategorical("modern", def, rng)
		if changed {
			assert.Contains(t, def.Options, value)
			assert.NotEqual(t, "modern", value)
		} else {
			assert.Equal(t, "modern", value)
		}
	}
}

func TestMutateNumericJitterBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	method := testutil.BannerSchema()
	def, ok := method.Parameter("padding") // unbounded numeric
	require.True(t, ok)

	for i := 0; i < 200; i++ {
		value, changed := mutateNumeric(100.0, def, rng)
		if !changed {
			continue
		}
		f, isFloat := value.(float64)
		require.True(t, isFloat)
		// Relative jitter of ±20%, rounded.
		assert.GreaterOrEqual(t, f, 80.0)
		assert.LessOrEqual(t, f, 120.0)
		assert.Equal(t, f, float64(int64(f)), "jittered value should be rounded")
	}
}

func TestMutateNumericClampsIntoDeclaredRange(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	method := testutil.BannerSchema()
	def, ok := method.Parameter("font_size") // declared range [8, 96]
	require.True(t, ok)

	// A value near the ceiling: unclamped jitter would frequently escape.
	for i := 0; i < 200; i++ {
		value, changed := mutateNumeric(90.0, def, rng)
		if !changed {
			continue
		}
		f := value.(float64)
		assert.GreaterOrEqual(t, f, 8.0)
		assert.LessOrEqual(t, f, 96.0)
	}
}

func TestMutateNumericNonNumericValue(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	def, _ := testutil.BannerSchema().Parameter("font_size")

	value, changed := mutateNumeric("not a number", def, rng)
	assert.False(t, changed)
	assert.Equal(t, "not a number", value)
}

func TestMutateColorProducesFreshHue(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	hexPattern := regexp.MustCompile(`^#[0-9a-f]{6}$`)

	for i := 0; i < 50; i++ {
		value, changed := mutateColor("#3366cc", rng)
		require.True(t, changed)
		assert.Regexp(t, hexPattern, value)
	}
}

func TestHSLToHexPrimaries(t *testing.T) {
	assert.Equal(t, "#ff0000", hslToHex(0, 1, 0.5))
	assert.Equal(t, "#00ff00", hslToHex(120, 1, 0.5))
	assert.Equal(t, "#0000ff", hslToHex(240, 1, 0.5))
	assert.Equal(t, "#000000", hslToHex(0, 0, 0))
	assert.Equal(t, "#ffffff", hslToHex(0, 0, 1))
}

func TestMutateParamsDeterministic(t *testing.T) {
	method := testutil.BannerSchema()
	params := testutil.BannerParams()

	rngA := rand.New(rand.NewSource(42))
	rngB := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		mutatedA, mutationsA := mutateParams(params, method, 0.5, rngA)
		mutatedB, mutationsB := mutateParams(params, method, 0.5, rngB)

		assert.Equal(t, mutatedA, mutatedB)
		assert.Equal(t, mutationsA, mutationsB)
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{24.5, 24.5, true},
		{float32(2), 2, true},
		{7, 7, true},
		{int32(7), 7, true},
		{int64(7), 7, true},
		{"7", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := toFloat(tt.in)
		assert.Equal(t, tt.ok, ok)
		if ok {
			assert.Equal(t, tt.want, got)
		}
	}
}
