package storage

import (
	"context"
	"testing"
	"time"

	"github.com/flowlytics/basket-sift/internal/common"
	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	db, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRun(id string, generatedAt time.Time) *model.Run {
	rules := []model.RuleEntry{
		{
			Rank:       1,
			Antecedent: []string{"bread"},
			Consequent: []string{"milk"},
			Support:    2.0 / 3.0,
			Confidence: 1.0,
			Lift:       1.0,
		},
		{
			Rank:              2,
			Antecedent:        []string{"milk, whole"}, // embedded comma must survive
			Consequent:        []string{"bread"},
			Support:           2.0 / 3.0,
			Confidence:        2.0 / 3.0,
			Lift:              1.0,
			Conviction:        1.0,
			ConvictionDefined: true,
		},
	}
	return &model.Run{
		Meta: model.RunMeta{
			RunID:         id,
			SourceFile:    "orders.csv",
			GeneratedAt:   generatedAt,
			MinSupport:    0.5,
			MinConfidence: 0.5,
		},
		Report: &model.Report{
			TransactionCount: 3,
			ItemCount:        2,
			Itemsets: []model.ItemsetEntry{
				{Items: []string{"milk, whole"}, Support: 1.0},
				{Items: []string{"bread"}, Support: 2.0 / 3.0},
			},
			Rules:           rules,
			SingleItemRules: rules[:1],
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()

	run := testRun("run-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, db.SaveRun(ctx, run))

	got, err := db.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, run.Meta.RunID, got.Meta.RunID)
	assert.Equal(t, run.Meta.SourceFile, got.Meta.SourceFile)
	assert.True(t, run.Meta.GeneratedAt.Equal(got.Meta.GeneratedAt))
	assert.InDelta(t, run.Meta.MinSupport, got.Meta.MinSupport, 1e-12)

	assert.Equal(t, run.Report.TransactionCount, got.Report.TransactionCount)
	assert.Equal(t, run.Report.ItemCount, got.Report.ItemCount)
	assert.Equal(t, run.Report.Itemsets, got.Report.Itemsets)
	assert.Equal(t, run.Report.Rules, got.Report.Rules)
	assert.Equal(t, run.Report.SingleItemRules, got.Report.SingleItemRules)
}

func TestGetRunNotFound(t *testing.T) {
	db := newTestStorage(t)

	_, err := db.GetRun(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveRunValidation(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		run  *model.Run
	}{
		{name: "nil run", run: nil},
		{name: "missing id", run: &model.Run{
			Meta:   model.RunMeta{GeneratedAt: time.Now()},
			Report: &model.Report{},
		}},
		{name: "missing report", run: &model.Run{
			Meta: model.RunMeta{RunID: "x", GeneratedAt: time.Now()},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, db.SaveRun(ctx, tt.run))
		})
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()

	run := testRun("run-1", time.Now().UTC())
	require.NoError(t, db.SaveRun(ctx, run))
	assert.Error(t, db.SaveRun(ctx, run))
}

func TestListRuns(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.SaveRun(ctx, testRun("run-old", base)))
	require.NoError(t, db.SaveRun(ctx, testRun("run-new", base.Add(24*time.Hour))))

	summaries, err := db.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Newest first.
	assert.Equal(t, "run-new", summaries[0].Meta.RunID)
	assert.Equal(t, "run-old", summaries[1].Meta.RunID)
	assert.Equal(t, 2, summaries[0].ItemsetCount)
	assert.Equal(t, 2, summaries[0].RuleCount)
	assert.Equal(t, 3, summaries[0].TransactionCount)

	limited, err := db.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "run-new", limited[0].Meta.RunID)
}
