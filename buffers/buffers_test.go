package buffers

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/go-data-exporter/odbc"
	"github.com/go-data-exporter/odbc/handles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRowSetBatches(t *testing.T) {
	assert := assert.New(t)

	desc := []handles.ColumnDescription{
		handles.TextColumn("id", 10),
		handles.TextColumn("name", 20),
	}
	rows := make([][]any, 0, 25)
	for i := 0; i < 25; i++ {
		name := any(fmt.Sprintf("row-%d", i+1))
		if i == 7 {
			name = nil
		}
		rows = append(rows, []any{strconv.Itoa(i + 1), name})
	}
	c := odbc.NewCursor(handles.NewMemoryStatement(desc, rows))
	defer c.Close()

	buf, err := TextRowSetForCursor(10, c, 0)
	require.NoError(t, err)
	assert.Equal(2, buf.NumCols())
	assert.Equal(10, buf.BatchSize())

	rc, err := odbc.BindRowSetBuffer(c, buf)
	require.NoError(t, err)
	defer rc.Close()

	row := 0
	for _, want := range []int{10, 10, 5} {
		batch, hasRows, err := rc.Fetch()
		require.NoError(t, err)
		require.True(t, hasRows)
		assert.Equal(want, batch.NumRows())
		for r := 0; r < want; r++ {
			row++
			id, ok := batch.Value(r, 0)
			assert.True(ok)
			assert.Equal(strconv.Itoa(row), id)
			if row == 8 {
				assert.Nil(batch.At(r, 1), "NULL must surface as nil")
				_, ok := batch.Value(r, 1)
				assert.False(ok)
			} else {
				name, ok := batch.Value(r, 1)
				assert.True(ok)
				assert.Equal(fmt.Sprintf("row-%d", row), name)
			}
		}
	}
	_, hasRows, err := rc.Fetch()
	assert.NoError(err)
	assert.False(hasRows)
}

func TestTextRowSetTruncation(t *testing.T) {
	assert := assert.New(t)

	desc := []handles.ColumnDescription{handles.TextColumn("v", 32)}
	rows := [][]any{{"abcdefgh"}}
	c := odbc.NewCursor(handles.NewMemoryStatement(desc, rows))
	defer c.Close()

	buf, err := NewTextRowSet(1, []int{4})
	require.NoError(t, err)
	rc, err := odbc.BindRowSetBuffer(c, buf)
	require.NoError(t, err)
	defer rc.Close()

	batch, hasRows, err := rc.Fetch()
	require.NoError(t, err)
	require.True(t, hasRows)
	v, ok := batch.Value(0, 0)
	assert.True(ok)
	assert.Equal("abcd", v, "values past the column capacity are clamped")
}

func TestTextRowSetArguments(t *testing.T) {
	assert := assert.New(t)

	_, err := NewTextRowSet(0, []int{4})
	assert.Error(err)
	_, err = NewTextRowSet(4, []int{-1})
	assert.Error(err)
}

func TestWideTextRowSet(t *testing.T) {
	assert := assert.New(t)

	desc := []handles.ColumnDescription{
		{Name: "name", DataType: handles.SQLWVarchar, ColumnSize: 16, Nullability: handles.Nullable},
	}
	rows := [][]any{{"héllo"}, {"wörld"}, {nil}}
	c := odbc.NewCursor(handles.NewMemoryStatement(desc, rows))
	defer c.Close()

	buf, err := NewWideTextRowSet(4, []int{16})
	require.NoError(t, err)
	rc, err := odbc.BindRowSetBuffer(c, buf)
	require.NoError(t, err)
	defer rc.Close()

	batch, hasRows, err := rc.Fetch()
	require.NoError(t, err)
	require.True(t, hasRows)
	assert.Equal(3, batch.NumRows())

	v, ok, err := batch.Value(0, 0)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("héllo", v)

	v, ok, err = batch.Value(1, 0)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("wörld", v)

	_, ok, err = batch.Value(2, 0)
	assert.NoError(err)
	assert.False(ok, "NULL must surface as not ok")
}
