// Package diagnostics wraps the structured logger the compiler emits progress and cache events
// to. It carries no correctness-relevant state: a caller that never configures a logger gets a
// no-op one and the compiler behaves identically.
package diagnostics

import "go.uber.org/zap"

// Logger is the narrow logging surface the compiler depends on.
type Logger struct {
	zap *zap.Logger
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// New wraps an existing *zap.Logger.
func New(l *zap.Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return &Logger{zap: l}
}

// CacheHit logs a document-cache hit for filePath.
func (l *Logger) CacheHit(filePath string) {
	l.zap.Debug("document cache hit", zap.String("file", filePath))
}

// CacheMiss logs a document-cache miss for filePath.
func (l *Logger) CacheMiss(filePath string) {
	l.zap.Debug("document cache miss", zap.String("file", filePath))
}

// WalkedFile logs that filePath was lexed, parsed and validated, with counts of what it produced.
func (l *Logger) WalkedFile(filePath string, operations, fragments int) {
	l.zap.Debug("walked document",
		zap.String("file", filePath),
		zap.Int("operations", operations),
		zap.Int("fragments", fragments))
}

// LinkerFixpoint logs one round of the used-type expansion fixpoint.
func (l *Logger) LinkerFixpoint(round, newTypes int) {
	l.zap.Debug("type-declaration fixpoint round", zap.Int("round", round), zap.Int("newTypes", newTypes))
}
