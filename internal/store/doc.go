// Package store manages the SQLite database that message tables live in.
//
// Open applies the connection pragmas and bootstraps the protosql_tables
// registry. EnsureTable creates a message table from its descriptor and
// records the descriptor fingerprint, so a later run with a changed schema
// is reported instead of silently reading mismatched columns.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// SQLite has a single writer, so the pool is capped at one connection.
package store
