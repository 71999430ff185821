package entity

// ColumnType is the inferred type of a dataset column.
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric"
	ColumnText    ColumnType = "text"
	ColumnDate    ColumnType = "date"
)

// Column describes one column of an uploaded dataset.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Dataset is a tabular upload held in the session.
type Dataset struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// DatasetSummary is the upload response shape.
type DatasetSummary struct {
	SessionID string   `json:"session_id"`
	Name      string   `json:"name"`
	Rows      int      `json:"rows"`
	Columns   []Column `json:"columns"`
	Preview   [][]string `json:"preview"`
}

// AnalysisSpec is the constrained plan the model emits instead of code.
// It is interpreted by a deterministic evaluator.
type AnalysisSpec struct {
	Operation string   `json:"operation"` // sum|mean|count|min|max|groupby
	Column    string   `json:"column,omitempty"`
	GroupBy   string   `json:"group_by,omitempty"`
	Filters   []Filter `json:"filters,omitempty"`
}

// Filter narrows dataset rows before aggregation.
type Filter struct {
	Column string `json:"column"`
	Op     string `json:"op"` // eq|ne|gt|lt|contains
	Value  string `json:"value"`
}

// AnalysisResult is the evaluator output.
type AnalysisResult struct {
	Value  float64            `json:"value,omitempty"`
	Groups map[string]float64 `json:"groups,omitempty"`
	Rows   int                `json:"rows"`
}

// ChartData is a renderable series for the frontend.
type ChartData struct {
	Kind   string    `json:"kind"` // bar|line|pie
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Title  string    `json:"title"`
}

// DatasetAnswer is the full reply to a dataset question.
type DatasetAnswer struct {
	Plan     string          `json:"plan"`
	Spec     *AnalysisSpec   `json:"spec,omitempty"`
	Result   *AnalysisResult `json:"result,omitempty"`
	Chart    *ChartData      `json:"chart,omitempty"`
	Answer   string          `json:"answer"`
}

// DatasetTurn is one question/answer exchange kept in the session.
type DatasetTurn struct {
	Question string        `json:"question"`
	Answer   DatasetAnswer `json:"answer"`
}
