package datachat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
)

// Evaluate runs a constrained analysis spec against a dataset. The
// model never emits code; it emits a spec and this evaluator is the
// only thing that touches the data.
func Evaluate(ds *entity.Dataset, spec *entity.AnalysisSpec) (*entity.AnalysisResult, error) {
	rows, err := filterRows(ds, spec.Filters)
	if err != nil {
		return nil, err
	}

	switch spec.Operation {
	case "count":
		return &entity.AnalysisResult{Value: float64(len(rows)), Rows: len(rows)}, nil
	case "sum", "mean", "min", "max":
		return aggregateColumn(ds, rows, spec)
	case "groupby":
		return groupBy(ds, rows, spec)
	default:
		return nil, fmt.Errorf("%w: operation %q", entity.ErrInvalidParameter, spec.Operation)
	}
}

func aggregateColumn(ds *entity.Dataset, rows [][]string, spec *entity.AnalysisSpec) (*entity.AnalysisResult, error) {
	idx, err := columnIndex(ds, spec.Column)
	if err != nil {
		return nil, err
	}
	if ds.Columns[idx].Type != entity.ColumnNumeric {
		return nil, fmt.Errorf("%w: %s", entity.ErrColumnNotNumeric, spec.Column)
	}

	values := numericValues(rows, idx)
	if len(values) == 0 {
		return &entity.AnalysisResult{Rows: 0}, nil
	}

	var value float64
	switch spec.Operation {
	case "sum":
		for _, v := range values {
			value += v
		}
	case "mean":
		for _, v := range values {
			value += v
		}
		value /= float64(len(values))
	case "min":
		value = values[0]
		for _, v := range values[1:] {
			if v < value {
				value = v
			}
		}
	case "max":
		value = values[0]
		for _, v := range values[1:] {
			if v > value {
				value = v
			}
		}
	}
	return &entity.AnalysisResult{Value: value, Rows: len(values)}, nil
}

// groupBy sums the target column per group, or counts rows per group
// when no column is given.
func groupBy(ds *entity.Dataset, rows [][]string, spec *entity.AnalysisSpec) (*entity.AnalysisResult, error) {
	groupIdx, err := columnIndex(ds, spec.GroupBy)
	if err != nil {
		return nil, err
	}

	valueIdx := -1
	if spec.Column != "" {
		valueIdx, err = columnIndex(ds, spec.Column)
		if err != nil {
			return nil, err
		}
		if ds.Columns[valueIdx].Type != entity.ColumnNumeric {
			return nil, fmt.Errorf("%w: %s", entity.ErrColumnNotNumeric, spec.Column)
		}
	}

	groups := make(map[string]float64)
	for _, row := range rows {
		key := row[groupIdx]
		if valueIdx < 0 {
			groups[key]++
			continue
		}
		v, ok := parseNumeric(row[valueIdx])
		if !ok {
			continue
		}
		groups[key] += v
	}
	return &entity.AnalysisResult{Groups: groups, Rows: len(rows)}, nil
}

func filterRows(ds *entity.Dataset, filters []entity.Filter) ([][]string, error) {
	rows := ds.Rows
	for _, filter := range filters {
		idx, err := columnIndex(ds, filter.Column)
		if err != nil {
			return nil, err
		}

		var kept [][]string
		for _, row := range rows {
			ok, err := matchFilter(row[idx], filter)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	return rows, nil
}

func matchFilter(cell string, filter entity.Filter) (bool, error) {
	switch filter.Op {
	case "eq":
		return strings.EqualFold(strings.TrimSpace(cell), strings.TrimSpace(filter.Value)), nil
	case "ne":
		return !strings.EqualFold(strings.TrimSpace(cell), strings.TrimSpace(filter.Value)), nil
	case "contains":
		return strings.Contains(strings.ToLower(cell), strings.ToLower(filter.Value)), nil
	case "gt", "lt":
		left, ok := parseNumeric(cell)
		if !ok {
			return false, nil
		}
		right, ok := parseNumeric(filter.Value)
		if !ok {
			return false, fmt.Errorf("%w: filter value %q is not numeric", entity.ErrInvalidParameter, filter.Value)
		}
		if filter.Op == "gt" {
			return left > right, nil
		}
		return left < right, nil
	default:
		return false, fmt.Errorf("%w: filter op %q", entity.ErrInvalidParameter, filter.Op)
	}
}

func columnIndex(ds *entity.Dataset, name string) (int, error) {
	for i, col := range ds.Columns {
		if strings.EqualFold(col.Name, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", entity.ErrUnknownColumn, name)
}

func numericValues(rows [][]string, idx int) []float64 {
	var values []float64
	for _, row := range rows {
		if v, ok := parseNumeric(row[idx]); ok {
			values = append(values, v)
		}
	}
	return values
}

func parseNumeric(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BuildChart turns a groupby result into a renderable series, labels
// sorted by value descending for stable output.
func BuildChart(title string, result *entity.AnalysisResult) *entity.ChartData {
	if result == nil || len(result.Groups) == 0 {
		return nil
	}

	labels := make([]string, 0, len(result.Groups))
	for label := range result.Groups {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if result.Groups[labels[i]] != result.Groups[labels[j]] {
			return result.Groups[labels[i]] > result.Groups[labels[j]]
		}
		return labels[i] < labels[j]
	})

	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = result.Groups[label]
	}
	return &entity.ChartData{Kind: "bar", Labels: labels, Values: values, Title: title}
}
