package dao

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/protosql/internal/sqlexpr"
)

// Clock supplies the wall time used to measure statement cost.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// IDGenerator names each logged statement.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 statement ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SQLLogger writes one record per executed statement.
//
// Records are logged at Debug level when the statement succeeds and at
// Warn level when it fails. Attributes: op, message, stmt, cost, sql and
// either rows or error.
type SQLLogger struct {
	logger  *slog.Logger
	message string
	clock   Clock
	ids     IDGenerator
}

// NewSQLLogger returns a logger for statements on message. nil arguments
// select slog.Default, the system clock and UUIDv7 ids.
func NewSQLLogger(message string, logger *slog.Logger, clock Clock, ids IDGenerator) *SQLLogger {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = systemClock{}
	}
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &SQLLogger{logger: logger, message: message, clock: clock, ids: ids}
}

// statementLog tracks one statement between start and done.
type statementLog struct {
	l     *SQLLogger
	op    string
	id    string
	stmt  sqlexpr.Object
	start time.Time
}

func (l *SQLLogger) start(op string, stmt sqlexpr.Object) *statementLog {
	return &statementLog{l: l, op: op, id: l.ids.Generate(), stmt: stmt, start: l.clock.Now()}
}

func (s *statementLog) done(ctx context.Context, rows int64, err error) {
	cost := s.l.clock.Now().Sub(s.start)
	attrs := []any{
		"op", s.op,
		"message", s.l.message,
		"stmt", s.id,
		"cost", cost,
		"sql", sqlexpr.Solid(s.stmt),
	}
	if err != nil {
		s.l.logger.WarnContext(ctx, "sql failed", append(attrs, "error", err)...)
		return
	}
	s.l.logger.DebugContext(ctx, "sql", append(attrs, "rows", rows)...)
}
