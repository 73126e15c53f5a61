package config

// Default returns the evolution configuration used when the caller supplies
// no overrides.
func Default() EvolutionConfig {
	return EvolutionConfig{
		PopulationSize:    8,
		MaxGenerations:    10,
		MutationRate:      0.2,
		CrossoverRate:     0.7,
		EliteCount:        2,
		FitnessThreshold:  90,
		DiversityPressure: 0.3,
	}
}
