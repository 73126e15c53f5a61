package evolution

// Scoring and exploration policy values. Hoisted into named constants so an
// alternate scoring or exploration policy can be swapped without touching the
// state machine.
const (
	// NeutralFitness is assigned to every genome that has not yet received
	// feedback.
	NeutralFitness = 50.0

	// MinFitness and MaxFitness bound the normalized fitness scale.
	MinFitness = 0.0
	MaxFitness = 100.0

	// RatingScale maps a human rating in [1,5] onto the fitness scale:
	// fitness = rating * RatingScale, clamped to [MinFitness, MaxFitness].
	RatingScale = 20.0

	// DiversityScale converts the mean pairwise parameter-difference count
	// into the [0,100] diversity score.
	DiversityScale = 20.0

	// TournamentSize is the number of genomes sampled (with replacement) per
	// tournament when selecting a parent.
	TournamentSize = 3

	// NumericJitter is the relative magnitude of numeric mutation: a mutated
	// numeric value moves by up to ±NumericJitter of its current value.
	NumericJitter = 0.2

	// Color mutation resamples the hue only; saturation and lightness stay
	// fixed so mutated palettes remain usable.
	colorSaturation = 0.7
	colorLightness  = 0.5

	// mutationTypeRandom tags mutations applied by the random per-parameter
	// operators. Crossover-origin differences are not separately tagged.
	mutationTypeRandom = "random"
)
