package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"interview-harvest/lib/question"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Count returns the number of rows currently in the table.
func (s Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, s.qry.count).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return count, nil
}

// Batch is a set of records staged inside an open transaction. It is
// either merged or discarded, never both.
type Batch struct {
	tx      *sql.Tx
	stmt    *sql.Stmt
	records []question.Record
	done    bool
}

// PrepareBatch opens a transaction and prepares the merge statement for
// the given records.
func (s Store) PrepareBatch(ctx context.Context, records []question.Record) (*Batch, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	stmt, err := tx.PrepareContext(ctx, s.qry.mergeInsert)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Batch{
		tx:      tx,
		stmt:    stmt,
		records: records,
	}, nil
}

func (b *Batch) Len() int {
	return len(b.records)
}

// Merge inserts every record whose (company_name, interview_question) pair
// is not already present and commits. It returns the number of rows the
// driver reported as affected. On any failure the transaction is rolled
// back and nothing is persisted.
func (b *Batch) Merge(ctx context.Context) (int64, error) {
	if b.done {
		return 0, fmt.Errorf("batch already finished")
	}
	b.done = true

	ctx, span := tracer.Start(ctx, "MergeBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(b.records)))

	defer b.stmt.Close()
	defer b.tx.Rollback()

	var affected int64
	for i, r := range b.records {
		res, err := b.stmt.ExecContext(
			ctx,
			r.CompanyName,
			r.RoleName,
			r.InterviewQuestion,
			r.Difficulty,
			r.QuestionURL,
			r.Source,
			r.DateCollected,
			r.CompanyName,
			r.InterviewQuestion,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "merge statement failed")
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rows affected unavailable")
			return 0, err
		}
		affected += n
	}

	err := b.tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		return 0, err
	}
	span.SetAttributes(attribute.Int64("affected", affected))
	return affected, nil
}

// Discard rolls back the batch if it has not been merged.
func (b *Batch) Discard() error {
	if b.done {
		return nil
	}
	b.done = true
	b.stmt.Close()
	return b.tx.Rollback()
}

// MergeInsert prepares and merges records in a single transaction.
func (s Store) MergeInsert(ctx context.Context, records []question.Record) (int64, error) {
	batch, err := s.PrepareBatch(ctx, records)
	if err != nil {
		return 0, err
	}
	defer batch.Discard()
	return batch.Merge(ctx)
}
