package postgres

import (
	"context"
)

// Condition is one WHERE clause with its placeholder arguments.
type Condition struct {
	Query any
	Args  []any
}

// Find finds records that match the given conditions
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.Client.WithContext(ctx).Find(dest, conditions...).Error
}

// Create creates a new record
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.Client.WithContext(ctx).Create(value).Error
}

// FindConcat runs one Find per condition and concatenates the result lists
// in condition order. It is a plain pass-through: no deduplication, no
// reordering, and the first failing query aborts the whole call.
//
// Example:
//
//	rows, err := postgres.FindConcat[Invoice](ctx, db,
//	    postgres.Condition{Query: "state = ?", Args: []any{"open"}},
//	    postgres.Condition{Query: "state = ?", Args: []any{"overdue"}},
//	)
func FindConcat[T any](ctx context.Context, p *Postgres, conditions ...Condition) ([]T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	results := []T{}
	for _, condition := range conditions {
		batch := []T{}
		err := p.Client.WithContext(ctx).Where(condition.Query, condition.Args...).Find(&batch).Error
		if err != nil {
			return nil, err
		}
		results = append(results, batch...)
	}
	return results, nil
}
