package models

// ChartSeries represents one data series of a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// CategoryRange is the range reference for category labels.
	CategoryRange string `json:"category_range,omitempty"`
	// ValueRange is the range reference for values.
	ValueRange string `json:"value_range,omitempty"`
	// Values are the cached point values, formatted as stored.
	Values []string `json:"values,omitempty"`
}

// Chart represents chart data attached to a graphic frame.
type Chart struct {
	// ChartType is the chart type (e.g., Bar, Line).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Categories are the category labels of the first series that has them.
	Categories []string `json:"categories,omitempty"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series"`
}
