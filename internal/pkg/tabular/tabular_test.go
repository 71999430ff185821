package tabular

import (
	"testing"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,amount,joined
Alice,"1,200.50",2024-01-15
Bob,300,2024-02-20

Carol,42.5,2024-03-01
`

func TestLoadCSV(t *testing.T) {
	ds, err := LoadCSV("people.csv", []byte(sampleCSV))
	require.NoError(t, err)

	require.Len(t, ds.Columns, 3)
	assert.Equal(t, "name", ds.Columns[0].Name)
	assert.Equal(t, entity.ColumnText, ds.Columns[0].Type)
	assert.Equal(t, entity.ColumnNumeric, ds.Columns[1].Type, "thousands separators still parse as numbers")
	assert.Equal(t, entity.ColumnDate, ds.Columns[2].Type)

	require.Len(t, ds.Rows, 3, "blank rows are dropped")
	assert.Equal(t, "Bob", ds.Rows[1][0])
}

func TestLoadCSVShortRowsPadded(t *testing.T) {
	ds, err := LoadCSV("short.csv", []byte("a,b,c\n1,2\n"))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Len(t, ds.Rows[0], 3)
	assert.Empty(t, ds.Rows[0][2])
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	_, err := LoadCSV("empty.csv", []byte("a,b,c\n"))
	assert.ErrorIs(t, err, entity.ErrEmptyDataset)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("notes.txt", []byte("whatever"))
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestLoadPicksCSV(t *testing.T) {
	ds, err := Load("Data.CSV", []byte("x\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, entity.ColumnNumeric, ds.Columns[0].Type)
}

func TestInferTypeMixedColumn(t *testing.T) {
	rows := [][]string{{"12"}, {"hello"}, {"3"}}
	assert.Equal(t, entity.ColumnText, inferType(rows, 0))
}

func TestInferTypeEmptyColumn(t *testing.T) {
	rows := [][]string{{""}, {"  "}}
	assert.Equal(t, entity.ColumnText, inferType(rows, 0))
}

func TestLatin1Fallback(t *testing.T) {
	data := append([]byte("city\nM"), 0xFC)
	data = append(data, []byte("nchen\n")...)

	ds, err := LoadCSV("cities.csv", data)
	require.NoError(t, err)
	assert.Equal(t, "München", ds.Rows[0][0])
}
