package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"
)

// columnNames turns a column list into select mods arguments.
func columnNames(columns []string) []any {
	names := make([]any, len(columns))
	for i, c := range columns {
		names[i] = c
	}
	return names
}

// findOne runs q and returns nil without error when no row matches.
func findOne[T any](ctx context.Context, exec bob.Executor, q bob.Query) (*T, error) {
	row, err := bob.One(ctx, exec, q, scan.StructMapper[T]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func findAll[T any](ctx context.Context, exec bob.Executor, q bob.Query) ([]*T, error) {
	rows, err := bob.All(ctx, exec, q, scan.StructMapper[T]())
	if err != nil {
		return nil, err
	}
	result := make([]*T, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
