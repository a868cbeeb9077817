package ingest

import (
	"testing"

	"github.com/flowlytics/basket-sift/internal/common"
	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairs_OrderKey(t *testing.T) {
	table := &Table{
		Headers: []string{"order", "item"},
		Rows: [][]string{
			{"1001", "milk"},
			{"1001", "bread"},
			{"1002", " milk "},
			{"1002", ""},
		},
	}
	det := Detect(table.Headers, table.Rows)

	pairs, err := Pairs(table, det)
	require.NoError(t, err)

	assert.Equal(t, []model.Pair{
		{TransactionKey: "1001", ItemLabel: "milk"},
		{TransactionKey: "1001", ItemLabel: "bread"},
		{TransactionKey: "1002", ItemLabel: "milk"},
	}, pairs)
}

func TestPairs_ListModeExplodes(t *testing.T) {
	table := &Table{
		Headers: []string{"order", "items"},
		Rows: [][]string{
			{"1", "milk, bread;eggs"},
			{"2", "milk | jam"},
			{"3", " ; , "},
		},
	}
	det := Detect(table.Headers, table.Rows)
	require.True(t, det.ListMode)

	pairs, err := Pairs(table, det)
	require.NoError(t, err)

	assert.Equal(t, []model.Pair{
		{TransactionKey: "1", ItemLabel: "milk"},
		{TransactionKey: "1", ItemLabel: "bread"},
		{TransactionKey: "1", ItemLabel: "eggs"},
		{TransactionKey: "2", ItemLabel: "milk"},
		{TransactionKey: "2", ItemLabel: "jam"},
	}, pairs)
}

func TestPairs_CustomerDateKey(t *testing.T) {
	table := &Table{
		Headers: []string{"customer", "date", "product"},
		Rows: [][]string{
			{"alice", "2024-03-01 09:15:00", "milk"},
			{"alice", "2024-03-01 18:40:12", "bread"},
			{"alice", "2024-03-02", "eggs"},
		},
	}
	det := Detect(table.Headers, table.Rows)
	require.Equal(t, KeyCustomerDate, det.Strategy)

	pairs, err := Pairs(table, det)
	require.NoError(t, err)

	// Same customer, same day: one basket regardless of time of day.
	assert.Equal(t, "alice|2024-03-01", pairs[0].TransactionKey)
	assert.Equal(t, "alice|2024-03-01", pairs[1].TransactionKey)
	assert.Equal(t, "alice|2024-03-02", pairs[2].TransactionKey)
}

func TestPairs_RowGroupFallback(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"x", "item"}
	}
	table := &Table{Headers: []string{"col_a", "col_b"}, Rows: rows}
	det := Detect(table.Headers, table.Rows)
	require.Equal(t, KeyRowGroup, det.Strategy)

	pairs, err := Pairs(table, det)
	require.NoError(t, err)
	require.Len(t, pairs, 12)

	assert.Equal(t, "0", pairs[0].TransactionKey)
	assert.Equal(t, "0", pairs[4].TransactionKey)
	assert.Equal(t, "1", pairs[5].TransactionKey)
	assert.Equal(t, "2", pairs[10].TransactionKey)
}

func TestPairs_RaggedRows(t *testing.T) {
	table := &Table{
		Headers: []string{"order", "item"},
		Rows: [][]string{
			{"1", "milk"},
			{"2"}, // missing item cell
			{"3", "bread"},
		},
	}
	det := Detect(table.Headers, table.Rows)

	pairs, err := Pairs(table, det)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
}

func TestPairs_NoItemColumn(t *testing.T) {
	table := &Table{Headers: []string{"a"}, Rows: nil}
	_, err := Pairs(table, Detection{ItemCol: -1})
	require.ErrorIs(t, err, common.ErrNoItemColumn)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-03-01", normalizeDate("2024-03-01 09:15:00"))
	assert.Equal(t, "2024-03-01", normalizeDate("2024-03-01T09:15:00Z"))
	assert.Equal(t, "2024-03-05", normalizeDate("03/05/2024"))
	assert.Equal(t, "not a date", normalizeDate("not a date"))
}
