package system

type HealthResponse struct {
	Status         string  `json:"status"`
	Service        string  `json:"service"`
	Uptime         float64 `json:"uptime"`
	Timestamp      string  `json:"timestamp"`
	DetectorStatus string  `json:"detector_status"`
	AnalyzerStatus string  `json:"analyzer_status"`
}

type TestResponse struct {
	Message      string            `json:"message"`
	Version      string            `json:"version"`
	Strategy     string            `json:"strategy"`
	Endpoints    []string          `json:"endpoints"`
	Dependencies map[string]string `json:"dependencies"`
}
