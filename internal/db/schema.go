package db

import (
	"context"
	"database/sql"
)

// HasTable reports whether table exists in the current schema.
func HasTable(ctx context.Context, q Querier, table string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}

// MissingTables returns which of tables are absent.
func MissingTables(ctx context.Context, q Querier, tables ...string) ([]string, error) {
	missing := []string{}
	for _, t := range tables {
		ok, err := HasTable(ctx, q, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
