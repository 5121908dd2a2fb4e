package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/protosql/internal/field"
	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/schema"
)

// TableInfo is a row of the protosql_tables registry.
type TableInfo struct {
	Name        string `json:"name"`
	Message     string `json:"message"`
	Fingerprint string `json:"fingerprint"`
	IRVersion   string `json:"ir_version"`
}

// EnsureTable creates the table for md if it does not exist and records its
// fingerprint. It returns true when the table was created by this call.
//
// An existing table whose recorded fingerprint differs from md is left
// untouched; the mismatch is logged and the registry is updated.
func (s *Store) EnsureTable(ctx context.Context, md *ir.MessageDescriptor, h *field.Handler) (bool, error) {
	fingerprint, err := ir.Fingerprint(md)
	if err != nil {
		return false, fmt.Errorf("ensure table %s: %w", md.Table, err)
	}
	ddl, err := schema.CreateTable(md, h)
	if err != nil {
		return false, fmt.Errorf("ensure table %s: %w", md.Table, err)
	}

	created := false
	err = s.InTx(ctx, func(tx *sql.Tx) error {
		var recorded string
		err := tx.QueryRowContext(ctx,
			"SELECT fingerprint FROM protosql_tables WHERE name = ?", md.Table,
		).Scan(&recorded)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx, ddl); err != nil {
				return fmt.Errorf("create table: %w", err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO protosql_tables (name, message, fingerprint, ir_version)
				VALUES (?, ?, ?, ?)
			`, md.Table, md.Name, fingerprint, ir.Version)
			if err != nil {
				return fmt.Errorf("register table: %w", err)
			}
			created = true
			return nil
		case err != nil:
			return fmt.Errorf("read registry: %w", err)
		case recorded != fingerprint:
			slog.Warn("message schema changed since table was created",
				"table", md.Table,
				"message", md.Name,
				"recorded", recorded,
				"current", fingerprint)
			_, err = tx.ExecContext(ctx, `
				UPDATE protosql_tables SET message = ?, fingerprint = ?, ir_version = ?
				WHERE name = ?
			`, md.Name, fingerprint, ir.Version, md.Table)
			if err != nil {
				return fmt.Errorf("update registry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ensure table %s: %w", md.Table, err)
	}
	if created {
		slog.Debug("created table", "table", md.Table, "message", md.Name)
	}
	return created, nil
}

// Tables lists the registry, ordered by table name.
func (s *Store) Tables(ctx context.Context) ([]TableInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, message, fingerprint, ir_version
		FROM protosql_tables
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []TableInfo
	for rows.Next() {
		var ti TableInfo
		if err := rows.Scan(&ti.Name, &ti.Message, &ti.Fingerprint, &ti.IRVersion); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, ti)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}
