package evolution

import (
	"time"

	"github.com/variantlab/evolve-go/pkg/config"
)

// Status is the lifecycle state of an evolution session.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Terminal reports whether the status permits no further generation data
// mutation.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// Session is one evolution run: its configuration, full generation history,
// and the best genome seen so far. Sessions are created once, mutated by
// feedback submission and evolution, optionally paused and resumed, and end
// at completed or abandoned.
type Session struct {
	ID           string                 `json:"id"`
	MethodID     string                 `json:"method_id"`
	WorkspaceID  string                 `json:"workspace_id"`
	ClientID     string                 `json:"client_id,omitempty"`
	Status       Status                 `json:"status"`
	Config       config.EvolutionConfig `json:"config"`
	Generations  []*Generation          `json:"generations"`
	BestGenome   *Genome                `json:"best_genome,omitempty"`
	TotalGenomes int                    `json:"total_genomes"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// CurrentGeneration returns the latest generation, the only one feedback may
// target.
func (s *Session) CurrentGeneration() *Generation {
	if len(s.Generations) == 0 {
		return nil
	}
	return s.Generations[len(s.Generations)-1]
}

// History projects the generation aggregates for charting.
func (s *Session) History() []GenerationStats {
	stats := make([]GenerationStats, len(s.Generations))
	for i, g := range s.Generations {
		stats[i] = GenerationStats{
			Number:         g.Number,
			AvgFitness:     g.AvgFitness,
			BestFitness:    g.BestFitness,
			DiversityScore: g.DiversityScore,
		}
	}
	return stats
}

// clone returns a deep copy of the session.
func (s *Session) clone() *Session {
	c := *s
	c.Generations = make([]*Generation, len(s.Generations))
	for i, g := range s.Generations {
		c.Generations[i] = g.clone()
	}
	if s.BestGenome != nil {
		c.BestGenome = s.BestGenome.clone()
	}
	return &c
}

// promoteBest records a copy of the genome as the session best if it exceeds
// the best fitness seen so far. The copy keeps the recorded best stable even
// if the live genome is re-rated later.
func (s *Session) promoteBest(g *Genome) {
	if s.BestGenome == nil || g.Fitness > s.BestGenome.Fitness {
		s.BestGenome = g.clone()
	}
}

// Feedback is one external rating of a genome. Transient input: consumed once
// per submission call, never stored verbatim.
type Feedback struct {
	GenomeID string   `json:"genome_id"`
	Rating   float64  `json:"rating"` // expected in [1,5]
	Comment  string   `json:"comment,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}
