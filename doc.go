// Package evolve is a Go implementation of an iterative creative-refinement
// engine: a genetic-algorithm optimizer that evolves populations of parameter
// configurations for generative methods toward higher human-rated fitness.
//
// The engine is a pure computation/state component intended to sit behind a
// separate service boundary: callers start a session from a base
// configuration, materialize each genome through their own generative
// backend, collect human ratings, submit them as feedback, and ask the engine
// to evolve the next generation until the session completes.
//
// Key Components:
//
//   - evolution: The core engine. Session state machine (start, feedback,
//     evolve, pause/resume, abandon), tournament selection, uniform key-wise
//     crossover, type-specific parameter mutation, elitism, and population
//     diversity measurement. Includes in-memory and SQLite session stores.
//
//   - schema: The read-only method schema surface (parameter definitions and
//     a registry interface) consumed by the mutation operators.
//
//   - config: Evolution configuration with defaults, partial overrides,
//     YAML loading, and validation.
//
//   - errors, logging: Structured error codes and leveled structured logging
//     shared across the module.
//
// Example usage:
//
//	registry := schema.NewStaticRegistry(bannerSchema)
//	engine := evolution.NewEngine(registry, evolution.WithSeed(42))
//
//	session, err := engine.Start(ctx, evolution.StartRequest{
//		MethodID:      "banner-v1",
//		InitialParams: map[string]interface{}{"style": "modern"},
//		WorkspaceID:   "ws-1",
//	})
//
//	// render genomes, collect ratings, then:
//	session, err = engine.SubmitFeedback(ctx, session.ID, feedback)
//	session, err = engine.Evolve(ctx, session.ID)
package evolve
