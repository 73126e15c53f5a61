package logging

import "context"

type contextKey string

const (
	sessionIDKey  contextKey = "session_id"
	generationKey contextKey = "generation"
)

// WithSessionID annotates a context with the session id so that every log
// line emitted during the operation carries it.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID extracts the session id from the context, if present.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// WithGeneration annotates a context with the generation number being built.
func WithGeneration(ctx context.Context, generation int) context.Context {
	return context.WithValue(ctx, generationKey, generation)
}

// GetGeneration extracts the generation number from the context, if present.
func GetGeneration(ctx context.Context) (int, bool) {
	gen, ok := ctx.Value(generationKey).(int)
	return gen, ok
}
