// Package evolution implements the iterative creative-refinement engine: a
// genetic-algorithm optimizer that evolves a population of parameter
// configurations for a generative method toward higher human-rated fitness,
// expressed as an explicit, resumable state machine.
package evolution

import (
	"time"
)

// Mutation records one parameter perturbation applied during genome
// construction.
type Mutation struct {
	Parameter string      `json:"parameter"`
	FromValue interface{} `json:"from_value"`
	ToValue   interface{} `json:"to_value"`
	Type      string      `json:"mutation_type"`
}

// Genome is one candidate parameter configuration plus lineage and fitness.
// Params and lineage fields are immutable after creation; only Fitness may be
// updated, and only via feedback on the latest generation of its session.
type Genome struct {
	ID         string                 `json:"id"`
	Generation int                    `json:"generation"`
	Params     map[string]interface{} `json:"params"`
	Fitness    float64                `json:"fitness"`
	ParentIDs  []string               `json:"parent_ids"`
	Mutations  []Mutation             `json:"mutations"`
	CreatedAt  time.Time              `json:"created_at"`
}

// clone returns a deep copy of the genome.
func (g *Genome) clone() *Genome {
	c := &Genome{
		ID:         g.ID,
		Generation: g.Generation,
		Params:     copyParams(g.Params),
		Fitness:    g.Fitness,
		CreatedAt:  g.CreatedAt,
	}
	if g.ParentIDs != nil {
		c.ParentIDs = append([]string{}, g.ParentIDs...)
	}
	if g.Mutations != nil {
		c.Mutations = append([]Mutation{}, g.Mutations...)
	}
	return c
}

// Generation is a population of genomes evaluated together as a cohort.
// AvgFitness and BestFitness are derived, recomputed on every feedback
// submission, never set directly by callers.
type Generation struct {
	Number         int       `json:"generation_number"`
	Genomes        []*Genome `json:"genomes"`
	AvgFitness     float64   `json:"avg_fitness"`
	BestFitness    float64   `json:"best_fitness"`
	DiversityScore float64   `json:"diversity_score"`
	CompletedAt    time.Time `json:"completed_at"`
}

// recomputeStats rederives the aggregate fitness figures from the genomes.
func (g *Generation) recomputeStats() {
	if len(g.Genomes) == 0 {
		g.AvgFitness = 0
		g.BestFitness = 0
		return
	}

	total := 0.0
	best := g.Genomes[0].Fitness
	for _, genome := range g.Genomes {
		total += genome.Fitness
		if genome.Fitness > best {
			best = genome.Fitness
		}
	}
	g.AvgFitness = total / float64(len(g.Genomes))
	g.BestFitness = best
}

// clone returns a deep copy of the generation.
func (g *Generation) clone() *Generation {
	c := &Generation{
		Number:         g.Number,
		Genomes:        make([]*Genome, len(g.Genomes)),
		AvgFitness:     g.AvgFitness,
		BestFitness:    g.BestFitness,
		DiversityScore: g.DiversityScore,
		CompletedAt:    g.CompletedAt,
	}
	for i, genome := range g.Genomes {
		c.Genomes[i] = genome.clone()
	}
	return c
}

// findGenome locates a genome by id within this generation.
func (g *Generation) findGenome(id string) *Genome {
	for _, genome := range g.Genomes {
		if genome.ID == id {
			return genome
		}
	}
	return nil
}

// GenerationStats is the per-generation history projection exposed for
// charting.
type GenerationStats struct {
	Number         int     `json:"generation_number"`
	AvgFitness     float64 `json:"avg_fitness"`
	BestFitness    float64 `json:"best_fitness"`
	DiversityScore float64 `json:"diversity_score"`
}

// copyParams returns a shallow copy of a parameter map. Parameter values are
// treated as immutable scalars throughout the engine.
func copyParams(params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
