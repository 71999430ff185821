package datachat

import (
	"testing"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesDataset() *entity.Dataset {
	return &entity.Dataset{
		Name: "sales.csv",
		Columns: []entity.Column{
			{Name: "region", Type: entity.ColumnText},
			{Name: "amount", Type: entity.ColumnNumeric},
			{Name: "product", Type: entity.ColumnText},
		},
		Rows: [][]string{
			{"North", "100", "Widget"},
			{"South", "250", "Widget"},
			{"North", "50", "Gadget"},
			{"East", "300", "Gadget"},
		},
	}
}

func TestEvaluateAggregations(t *testing.T) {
	ds := salesDataset()

	result, err := Evaluate(ds, &entity.AnalysisSpec{Operation: "sum", Column: "amount"})
	require.NoError(t, err)
	assert.InDelta(t, 700.0, result.Value, 0.001)
	assert.Equal(t, 4, result.Rows)

	result, err = Evaluate(ds, &entity.AnalysisSpec{Operation: "mean", Column: "amount"})
	require.NoError(t, err)
	assert.InDelta(t, 175.0, result.Value, 0.001)

	result, err = Evaluate(ds, &entity.AnalysisSpec{Operation: "min", Column: "amount"})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, result.Value, 0.001)

	result, err = Evaluate(ds, &entity.AnalysisSpec{Operation: "max", Column: "amount"})
	require.NoError(t, err)
	assert.InDelta(t, 300.0, result.Value, 0.001)

	result, err = Evaluate(ds, &entity.AnalysisSpec{Operation: "count"})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, result.Value, 0.001)
}

func TestEvaluateFilters(t *testing.T) {
	ds := salesDataset()

	result, err := Evaluate(ds, &entity.AnalysisSpec{
		Operation: "sum",
		Column:    "amount",
		Filters:   []entity.Filter{{Column: "region", Op: "eq", Value: "north"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 150.0, result.Value, 0.001)

	result, err = Evaluate(ds, &entity.AnalysisSpec{
		Operation: "count",
		Filters:   []entity.Filter{{Column: "amount", Op: "gt", Value: "100"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.Value, 0.001)

	result, err = Evaluate(ds, &entity.AnalysisSpec{
		Operation: "count",
		Filters:   []entity.Filter{{Column: "product", Op: "contains", Value: "widg"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.Value, 0.001)
}

func TestEvaluateGroupBy(t *testing.T) {
	ds := salesDataset()

	result, err := Evaluate(ds, &entity.AnalysisSpec{
		Operation: "groupby",
		GroupBy:   "region",
		Column:    "amount",
	})
	require.NoError(t, err)
	assert.InDelta(t, 150.0, result.Groups["North"], 0.001)
	assert.InDelta(t, 250.0, result.Groups["South"], 0.001)
	assert.InDelta(t, 300.0, result.Groups["East"], 0.001)

	result, err = Evaluate(ds, &entity.AnalysisSpec{Operation: "groupby", GroupBy: "product"})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.Groups["Widget"], 0.001)
}

func TestEvaluateErrors(t *testing.T) {
	ds := salesDataset()

	_, err := Evaluate(ds, &entity.AnalysisSpec{Operation: "sum", Column: "missing"})
	assert.ErrorIs(t, err, entity.ErrUnknownColumn)

	_, err = Evaluate(ds, &entity.AnalysisSpec{Operation: "sum", Column: "region"})
	assert.ErrorIs(t, err, entity.ErrColumnNotNumeric)

	_, err = Evaluate(ds, &entity.AnalysisSpec{Operation: "median", Column: "amount"})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestBuildChartSortsByValue(t *testing.T) {
	chart := BuildChart("sales by region", &entity.AnalysisResult{
		Groups: map[string]float64{"North": 150, "South": 250, "East": 300},
	})
	require.NotNil(t, chart)
	assert.Equal(t, []string{"East", "South", "North"}, chart.Labels)
	assert.Equal(t, []float64{300, 250, 150}, chart.Values)
	assert.Equal(t, "bar", chart.Kind)

	assert.Nil(t, BuildChart("empty", &entity.AnalysisResult{}))
}
