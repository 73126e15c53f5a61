package config

// EvolutionConfig holds the tunable parameters of one evolution session.
type EvolutionConfig struct {
	// Number of genomes per generation. Fixed for the session lifetime.
	PopulationSize int `yaml:"population_size" json:"population_size" validate:"required,min=2"`

	// Upper bound on generation count before the session completes.
	MaxGenerations int `yaml:"max_generations" json:"max_generations" validate:"required,min=1"`

	// Per-parameter probability that a value is perturbed during offspring
	// construction.
	MutationRate float64 `yaml:"mutation_rate" json:"mutation_rate" validate:"min=0,max=1"`

	// Probability that an offspring is produced by combining two parents
	// rather than cloning the first one.
	CrossoverRate float64 `yaml:"crossover_rate" json:"crossover_rate" validate:"min=0,max=1"`

	// Number of top-fitness genomes copied verbatim into the next generation.
	EliteCount int `yaml:"elite_count" json:"elite_count" validate:"min=0"`

	// Best-fitness level at which the session is considered converged.
	FitnessThreshold float64 `yaml:"fitness_threshold" json:"fitness_threshold" validate:"min=0,max=100"`

	// Reserved: intended weight for diversity-aware selection. Currently a
	// monitoring knob only; not consulted by selection or mutation.
	DiversityPressure float64 `yaml:"diversity_pressure" json:"diversity_pressure" validate:"min=0,max=1"`
}

// Overrides carries partial configuration supplied by the caller at session
// start. Nil fields keep the default value.
type Overrides struct {
	PopulationSize    *int     `yaml:"population_size,omitempty" json:"population_size,omitempty"`
	MaxGenerations    *int     `yaml:"max_generations,omitempty" json:"max_generations,omitempty"`
	MutationRate      *float64 `yaml:"mutation_rate,omitempty" json:"mutation_rate,omitempty"`
	CrossoverRate     *float64 `yaml:"crossover_rate,omitempty" json:"crossover_rate,omitempty"`
	EliteCount        *int     `yaml:"elite_count,omitempty" json:"elite_count,omitempty"`
	FitnessThreshold  *float64 `yaml:"fitness_threshold,omitempty" json:"fitness_threshold,omitempty"`
	DiversityPressure *float64 `yaml:"diversity_pressure,omitempty" json:"diversity_pressure,omitempty"`
}

// Merge applies non-nil override fields on top of the receiver and returns
// the merged configuration. The receiver is not modified.
func (c EvolutionConfig) Merge(o *Overrides) EvolutionConfig {
	if o == nil {
		return c
	}
	merged := c
	if o.PopulationSize != nil {
		merged.PopulationSize = *o.PopulationSize
	}
	if o.MaxGenerations != nil {
		merged.MaxGenerations = *o.MaxGenerations
	}
	if o.MutationRate != nil {
		merged.MutationRate = *o.MutationRate
	}
	if o.CrossoverRate != nil {
		merged.CrossoverRate = *o.CrossoverRate
	}
	if o.EliteCount != nil {
		merged.EliteCount = *o.EliteCount
	}
	if o.FitnessThreshold != nil {
		merged.FitnessThreshold = *o.FitnessThreshold
	}
	if o.DiversityPressure != nil {
		merged.DiversityPressure = *o.DiversityPressure
	}
	return merged
}
