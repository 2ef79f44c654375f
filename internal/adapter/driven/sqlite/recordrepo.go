package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
	"github.com/ericfisherdev/dvrhub/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RecordStore = (*RecordRepo)(nil)

// RecordRepo is the SQLite implementation of the RecordStore port interface.
// Row order is insertion order, which plays the role of the sheet's row order.
type RecordRepo struct {
	db *DB
}

// NewRecordRepo creates a new RecordRepo backed by the given DB.
func NewRecordRepo(db *DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// LoadAll returns every record ordered by insertion.
func (r *RecordRepo) LoadAll(ctx context.Context) ([]model.Record, error) {
	const query = `SELECT brand, model, user, pass, info FROM records ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(&rec.Brand, &rec.Model, &rec.User, &rec.Pass, &rec.Info); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Append inserts one record as the new last row.
func (r *RecordRepo) Append(ctx context.Context, record model.Record) error {
	const query = `INSERT INTO records (brand, model, user, pass, info) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, record.Brand, record.Model, record.User, record.Pass, record.Info)
	if err != nil {
		return fmt.Errorf("append record %s/%s: %w", record.Brand, record.Model, err)
	}
	return nil
}
