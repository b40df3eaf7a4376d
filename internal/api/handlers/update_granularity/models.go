package update_granularity

// UpdateGranularityRequest HTTP request model
// null или отсутствующее значение сбрасывает переопределение барбершопа
type UpdateGranularityRequest struct {
	GranularityMinutes *int `json:"granularityMinutes"`
}
