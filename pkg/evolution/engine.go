package evolution

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/variantlab/evolve-go/pkg/config"
	"github.com/variantlab/evolve-go/pkg/errors"
	"github.com/variantlab/evolve-go/pkg/logging"
	"github.com/variantlab/evolve-go/pkg/schema"
)

// Engine runs evolution sessions: it owns the session store, resolves method
// schemas through the registry, and applies the evolutionary operators. All
// mutating operations are serialized per session id; different sessions run
// fully concurrently.
type Engine struct {
	store     SessionStore
	registry  schema.Registry
	validator *config.Validator

	// Seedable random source. All structural randomness (mutation, crossover
	// choices, tournament sampling) flows from here so a fixed seed
	// reproduces an identical sequence of genomes.
	rng   *rand.Rand
	rngMu sync.Mutex

	// Max goroutines used for offspring construction inside one Evolve call.
	concurrency int

	locks sync.Map // session id -> *sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore swaps the session store; the default is an in-memory store.
func WithStore(store SessionStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithSeed makes the engine's random source reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithConcurrency bounds the goroutines used for offspring construction.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine creates an evolution engine backed by the given method schema
// registry.
func NewEngine(registry schema.Registry, opts ...Option) *Engine {
	e := &Engine{
		store:       NewMemoryStore(),
		registry:    registry,
		validator:   config.NewValidator(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		concurrency: 3,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// sessionLock returns the mutation lock for a session id, creating it on
// first use.
func (e *Engine) sessionLock(id string) *sync.Mutex {
	lock, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// StartRequest carries the inputs for starting a session.
type StartRequest struct {
	MethodID      string                 `json:"method_id"`
	InitialParams map[string]interface{} `json:"initial_params"`
	WorkspaceID   string                 `json:"workspace_id"`
	ClientID      string                 `json:"client_id,omitempty"`
	Overrides     *config.Overrides      `json:"config_overrides,omitempty"`
}

// Start creates a new active session and seeds generation 0: population slot
// 0 receives the caller's initial params unmodified, every further slot an
// independent mutation of that same base. All genomes start at the neutral
// fitness baseline.
func (e *Engine) Start(ctx context.Context, req StartRequest) (*Session, error) {
	logger := logging.GetLogger()

	if err := errors.CheckContext(ctx, "start session"); err != nil {
		return nil, err
	}

	method, err := e.registry.Resolve(req.MethodID)
	if err != nil {
		return nil, err
	}

	cfg := config.Default().Merge(req.Overrides)
	if err := e.validator.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ValidationFailed, "invalid session config")
	}

	now := time.Now()
	genomes := make([]*Genome, 0, cfg.PopulationSize)

	// The literal seed occupies slot 0: zero mutations, no parents.
	genomes = append(genomes, &Genome{
		ID:         uuid.NewString(),
		Generation: 0,
		Params:     copyParams(req.InitialParams),
		Fitness:    NeutralFitness,
		ParentIDs:  []string{},
		Mutations:  []Mutation{},
		CreatedAt:  now,
	})

	e.rngMu.Lock()
	for i := 1; i < cfg.PopulationSize; i++ {
		params, mutations := mutateParams(req.InitialParams, method, cfg.MutationRate, e.rng)
		genomes = append(genomes, &Genome{
			ID:         uuid.NewString(),
			Generation: 0,
			Params:     params,
			Fitness:    NeutralFitness,
			ParentIDs:  []string{},
			Mutations:  mutations,
			CreatedAt:  now,
		})
	}
	e.rngMu.Unlock()

	gen := &Generation{
		Number:      0,
		Genomes:     genomes,
		CompletedAt: now,
	}
	gen.recomputeStats()
	gen.DiversityScore = diversityScore(genomes)

	session := &Session{
		ID:           uuid.NewString(),
		MethodID:     req.MethodID,
		WorkspaceID:  req.WorkspaceID,
		ClientID:     req.ClientID,
		Status:       StatusActive,
		Config:       cfg,
		Generations:  []*Generation{gen},
		TotalGenomes: len(genomes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, g := range genomes {
		session.promoteBest(g)
	}

	if err := e.store.Put(session); err != nil {
		return nil, err
	}

	logger.Info(logging.WithSessionID(ctx, session.ID),
		"started evolution session: method=%s population=%d", req.MethodID, cfg.PopulationSize)

	return session, nil
}

// SubmitFeedback maps external ratings onto genome fitness. Only genomes of
// the current (latest) generation can be rated; unknown genome ids are
// ignored. Fitness is rating scaled onto [0,100]; repeated feedback for the
// same genome overwrites the previous rating. Generation aggregates and the
// session best genome are recomputed after every submission.
func (e *Engine) SubmitFeedback(ctx context.Context, sessionID string, feedback []Feedback) (*Session, error) {
	logger := logging.GetLogger()
	ctx = logging.WithSessionID(ctx, sessionID)

	if err := errors.CheckContext(ctx, "submit feedback"); err != nil {
		return nil, err
	}

	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status.Terminal() {
		return nil, errors.WithFields(
			errors.New(errors.InvalidSessionState, "cannot submit feedback on a terminal session"),
			errors.Fields{"session_id": sessionID, "status": session.Status},
		)
	}

	gen := session.CurrentGeneration()
	applied := 0
	for _, fb := range feedback {
		genome := gen.findGenome(fb.GenomeID)
		if genome == nil {
			logger.Debug(ctx, "ignoring feedback for genome %s: not in current generation", fb.GenomeID)
			continue
		}
		genome.Fitness = clampFitness(fb.Rating * RatingScale)
		applied++
	}

	gen.recomputeStats()
	for _, genome := range gen.Genomes {
		session.promoteBest(genome)
	}
	session.UpdatedAt = time.Now()

	if err := e.store.Put(session); err != nil {
		return nil, err
	}

	logger.Info(logging.WithGeneration(ctx, gen.Number),
		"applied feedback: received=%d applied=%d avg=%.1f best=%.1f",
		len(feedback), applied, gen.AvgFitness, gen.BestFitness)

	return session, nil
}

// Evolve builds the next generation from the current one: the top EliteCount
// genomes are carried over verbatim, the remaining slots filled with offspring
// from tournament selection, crossover, and mutation.
//
// Termination is evaluated against the generation about to be superseded, yet
// the new generation is still constructed and appended before the session
// transitions to completed: the final stored generation always reflects one
// additional evolutionary step past the triggering condition.
func (e *Engine) Evolve(ctx context.Context, sessionID string) (*Session, error) {
	logger := logging.GetLogger()
	ctx = logging.WithSessionID(ctx, sessionID)

	if err := errors.CheckContext(ctx, "evolve"); err != nil {
		return nil, err
	}

	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != StatusActive {
		return nil, errors.WithFields(
			errors.New(errors.InvalidSessionState, "evolve requires an active session"),
			errors.Fields{"session_id": sessionID, "status": session.Status},
		)
	}

	// The method schema is re-resolved every step; a method withdrawn from
	// the registry fails the call before any generation data changes.
	method, err := e.registry.Resolve(session.MethodID)
	if err != nil {
		return nil, err
	}

	cfg := session.Config
	prev := session.CurrentGeneration()

	completed := prev.Number+1 >= cfg.MaxGenerations || prev.BestFitness >= cfg.FitnessThreshold

	nextNumber := prev.Number + 1
	now := time.Now()

	// Elitism: the fittest genomes of the previous generation carry over
	// verbatim, keeping their earned fitness.
	ranked := append([]*Genome{}, prev.Genomes...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Fitness > ranked[j].Fitness })

	eliteCount := cfg.EliteCount
	if eliteCount > len(ranked) {
		eliteCount = len(ranked)
	}

	genomes := make([]*Genome, 0, cfg.PopulationSize)
	for _, elite := range ranked[:eliteCount] {
		genomes = append(genomes, &Genome{
			ID:         uuid.NewString(),
			Generation: nextNumber,
			Params:     copyParams(elite.Params),
			Fitness:    elite.Fitness,
			ParentIDs:  []string{elite.ID},
			Mutations:  []Mutation{},
			CreatedAt:  now,
		})
	}

	// Offspring slots are independent, so they build concurrently. Each slot
	// gets its own random source seeded sequentially from the engine source,
	// keeping the population deterministic under a fixed seed.
	offspringCount := cfg.PopulationSize - eliteCount
	seeds := make([]int64, offspringCount)
	e.rngMu.Lock()
	for i := range seeds {
		seeds[i] = e.rng.Int63()
	}
	e.rngMu.Unlock()

	offspring := make([]*Genome, offspringCount)
	workers := pool.New().WithMaxGoroutines(e.concurrency)
	for i := range offspring {
		i := i
		workers.Go(func() {
			slotRng := rand.New(rand.NewSource(seeds[i]))
			offspring[i] = buildOffspring(prev.Genomes, method, cfg, nextNumber, slotRng)
		})
	}
	workers.Wait()
	genomes = append(genomes, offspring...)

	next := &Generation{
		Number:      nextNumber,
		Genomes:     genomes,
		CompletedAt: time.Now(),
	}
	next.recomputeStats()
	next.DiversityScore = diversityScore(genomes)

	session.Generations = append(session.Generations, next)
	session.TotalGenomes += len(genomes)
	for _, genome := range genomes {
		session.promoteBest(genome)
	}
	if completed {
		session.Status = StatusCompleted
	}
	session.UpdatedAt = time.Now()

	if err := e.store.Put(session); err != nil {
		return nil, err
	}

	logger.Info(logging.WithGeneration(ctx, next.Number),
		"evolved population: elites=%d offspring=%d diversity=%.1f completed=%v",
		eliteCount, offspringCount, next.DiversityScore, completed)

	return session, nil
}

// buildOffspring creates one genome for the next generation: two parents via
// tournament selection, uniform crossover with probability CrossoverRate
// (otherwise a copy of the first parent), then per-parameter mutation.
func buildOffspring(parents []*Genome, method *schema.MethodSchema, cfg config.EvolutionConfig, generation int, rng *rand.Rand) *Genome {
	parent1 := tournamentSelect(parents, rng)
	parent2 := tournamentSelect(parents, rng)

	var childParams map[string]interface{}
	if rng.Float64() < cfg.CrossoverRate {
		childParams = crossoverParams(parent1.Params, parent2.Params, rng)
	} else {
		childParams = copyParams(parent1.Params)
	}

	params, mutations := mutateParams(childParams, method, cfg.MutationRate, rng)

	return &Genome{
		ID:         uuid.NewString(),
		Generation: generation,
		Params:     params,
		Fitness:    NeutralFitness,
		ParentIDs:  []string{parent1.ID, parent2.ID},
		Mutations:  mutations,
		CreatedAt:  time.Now(),
	}
}

// Pause sets an active session to paused. Idempotent; pausing a terminal
// session is rejected so a completed or abandoned session cannot re-enter the
// active lifecycle through resume.
func (e *Engine) Pause(ctx context.Context, sessionID string) (*Session, error) {
	return e.setStatus(ctx, sessionID, StatusPaused)
}

// Resume reactivates a paused session. Calling Resume on a session in any
// other state is a no-op returning the unchanged session.
func (e *Engine) Resume(ctx context.Context, sessionID string) (*Session, error) {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != StatusPaused {
		return session, nil
	}

	session.Status = StatusActive
	session.UpdatedAt = time.Now()
	if err := e.store.Put(session); err != nil {
		return nil, err
	}

	logging.GetLogger().Info(logging.WithSessionID(ctx, sessionID), "session resumed")
	return session, nil
}

// Abandon marks a non-terminal session abandoned. Caller-driven, idempotent,
// and terminal.
func (e *Engine) Abandon(ctx context.Context, sessionID string) (*Session, error) {
	return e.setStatus(ctx, sessionID, StatusAbandoned)
}

func (e *Engine) setStatus(ctx context.Context, sessionID string, status Status) (*Session, error) {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == status {
		return session, nil
	}
	if session.Status.Terminal() {
		return nil, errors.WithFields(
			errors.New(errors.InvalidSessionState, "cannot change status of a terminal session"),
			errors.Fields{"session_id": sessionID, "status": session.Status},
		)
	}

	session.Status = status
	session.UpdatedAt = time.Now()
	if err := e.store.Put(session); err != nil {
		return nil, err
	}

	logging.GetLogger().Info(logging.WithSessionID(ctx, sessionID), "session status set to %s", status)
	return session, nil
}

// Get returns the session snapshot for a session id.
func (e *Engine) Get(ctx context.Context, sessionID string) (*Session, error) {
	return e.store.Get(sessionID)
}

// History returns the per-generation fitness projection for charting.
func (e *Engine) History(ctx context.Context, sessionID string) ([]GenerationStats, error) {
	session, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.History(), nil
}

// List returns all sessions known to the store.
func (e *Engine) List(ctx context.Context) ([]*Session, error) {
	return e.store.List()
}

// clampFitness bounds a fitness value into [MinFitness, MaxFitness].
func clampFitness(f float64) float64 {
	if f < MinFitness {
		return MinFitness
	}
	if f > MaxFitness {
		return MaxFitness
	}
	return f
}
