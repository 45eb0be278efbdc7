package testutil

import (
	"context"
	"interview-harvest/lib/question"
	"interview-harvest/lib/warehouse"
	"testing"

	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

type WarehouseParams struct {
	// if unspecified, it will use `interview_questions`
	Table string
	// records merged before the test starts
	Seed []question.Record
}

// SetupWarehouse opens an in-memory sqlite warehouse with the schema
// applied. The store is closed when the test ends.
func SetupWarehouse(t testing.TB, params WarehouseParams) warehouse.Store {
	t.Helper()

	ctx := context.Background()
	store, err := warehouse.Open(ctx, warehouse.Config{
		Driver: warehouse.DriverSqlite,
		File:   ":memory:",
		Table:  params.Table,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	require.NoError(t, store.Setup(ctx))
	if len(params.Seed) > 0 {
		_, err = store.MergeInsert(ctx, params.Seed)
		require.NoError(t, err)
	}
	return store
}

// RandomRecord returns a fully populated record with random company and
// question text.
func RandomRecord(t testing.TB) question.Record {
	t.Helper()

	company, err := random.String(8)
	require.NoError(t, err)
	text, err := random.String(24)
	require.NoError(t, err)

	return question.Record{
		CompanyName:       company,
		RoleName:          question.DefaultRoleName,
		InterviewQuestion: text,
		Difficulty:        question.DifficultyMedium,
		QuestionURL:       "https://example.com/" + company,
		Source:            "Test",
		DateCollected:     "2024-03-09 14:30:05",
	}
}
