package warehouse

import (
	"context"
	"database/sql"
	"interview-harvest/lib/question"
	"strings"

	"golang.org/x/text/cases"
)

type GroupCount struct {
	Key   string
	Count int64
}

// Row is a stored record. Timestamps are rendered as
// `YYYY-MM-DD HH:MM:SS` regardless of the backend.
type Row struct {
	ID int64
	question.Record
	CreatedAt string
}

func (s Store) groupCounts(ctx context.Context, query string) ([]GroupCount, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GroupCount
	for rows.Next() {
		var gc GroupCount
		err := rows.Scan(&gc.Key, &gc.Count)
		if err != nil {
			return nil, err
		}
		out = append(out, gc)
	}
	return out, rows.Err()
}

// CountByCompany is ordered by count descending, then company name.
func (s Store) CountByCompany(ctx context.Context) ([]GroupCount, error) {
	return s.groupCounts(ctx, s.qry.countByCompany)
}

func (s Store) CountByDifficulty(ctx context.Context) ([]GroupCount, error) {
	return s.groupCounts(ctx, s.qry.countByDifficulty)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var company, role, text, difficulty, link, source sql.NullString
		err := rows.Scan(
			&r.ID,
			&company,
			&role,
			&text,
			&difficulty,
			&link,
			&source,
			&r.DateCollected,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		r.CompanyName = company.String
		r.RoleName = role.String
		r.InterviewQuestion = text.String
		r.Difficulty = difficulty.String
		r.QuestionURL = link.String
		r.Source = source.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s Store) companyNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.qry.companies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		err := rows.Scan(&name)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// SearchCompany finds rows whose company name contains term, ignoring case.
// Case is folded in Go with full unicode rules since sqlite's UPPER only
// knows ASCII. Wildcard characters in term are matched literally.
func (s Store) SearchCompany(ctx context.Context, term string, limit int) ([]Row, error) {
	names, err := s.companyNames(ctx)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(term)
	var args []any
	for _, name := range names {
		if strings.Contains(fold.String(name), needle) {
			args = append(args, name)
		}
	}
	if len(args) == 0 {
		return nil, nil
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.qry.rowsByCompany(len(args)-1), args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// Sample returns up to n rows in random order.
func (s Store) Sample(ctx context.Context, n int) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, s.qry.sample, n)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}
