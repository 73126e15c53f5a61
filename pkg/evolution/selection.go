package evolution

import (
	"math/rand"
)

// tournamentSelect picks one parent via tournament selection: TournamentSize
// genomes are sampled uniformly at random with replacement and the one with
// the highest fitness wins. Ties go to the first-encountered genome. The same
// genome may win both parent slots of one offspring, degenerating to
// clone-plus-mutate.
func tournamentSelect(genomes []*Genome, rng *rand.Rand) *Genome {
	best := genomes[rng.Intn(len(genomes))]
	for i := 1; i < TournamentSize; i++ {
		contender := genomes[rng.Intn(len(genomes))]
		if contender.Fitness > best.Fitness {
			best = contender
		}
	}
	return best
}
