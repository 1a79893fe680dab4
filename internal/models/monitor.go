package models

// SearchResult is one normalized web search hit. Upstream fields vary by
// provider, so missing values are substituted at normalization time.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Published   string `json:"published"`
	Favicon     string `json:"favicon,omitempty"`
}

// SearchResponse echoes the query alongside the normalized results.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// News type classifications the analysis step may assign.
const (
	NewsTypeFunding     = "funding"
	NewsTypeExecutive   = "executive"
	NewsTypeAcquisition = "acquisition"
	NewsTypePartnership = "partnership"
	NewsTypeExpansion   = "expansion"
	NewsTypeOther       = "other"
)

// Level values shared by urgency and confidence.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// AnalysisVerdict is the structured classification for one prospect.
type AnalysisVerdict struct {
	Company      string `json:"company"`
	HasNews      bool   `json:"hasNews"`
	Summary      string `json:"summary"`
	NewsType     string `json:"newsType"`
	Urgency      string `json:"urgency"`
	AlertMessage string `json:"alertMessage"`
	SourceURL    string `json:"sourceUrl,omitempty"`
	Confidence   string `json:"confidence"`
}

// Analysis sources: a verdict either came from the model or was synthesized
// because the model's output could not be decoded.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Analysis tags a verdict with the path that produced it.
type Analysis struct {
	Verdict AnalysisVerdict `json:"verdict"`
	Source  string          `json:"source"`
}

var newsTypes = map[string]bool{
	NewsTypeFunding:     true,
	NewsTypeExecutive:   true,
	NewsTypeAcquisition: true,
	NewsTypePartnership: true,
	NewsTypeExpansion:   true,
	NewsTypeOther:       true,
}

var levels = map[string]bool{
	LevelHigh:   true,
	LevelMedium: true,
	LevelLow:    true,
}

// Valid reports whether the verdict conforms to the schema: company present
// and every enum field within its allowed set. Fallback verdicts must pass
// the same check as model-produced ones.
func (v AnalysisVerdict) Valid() bool {
	return v.Company != "" && newsTypes[v.NewsType] && levels[v.Urgency] && levels[v.Confidence]
}

// Metadata describes how a monitor result was produced.
type Metadata struct {
	SearchQuery  string `json:"searchQuery"`
	TotalResults int    `json:"totalResults"`
	Timestamp    string `json:"timestamp"`
}

// MonitorResult is the combined envelope for one prospect in one run.
// Never persisted; lifetime is the request.
type MonitorResult struct {
	Prospect      string         `json:"prospect"`
	SearchResults []SearchResult `json:"searchResults"`
	Analysis      Analysis       `json:"analysis"`
	Metadata      Metadata       `json:"metadata"`
}

// BatchItem is the per-prospect outcome of a batch run. Exactly one of
// Result or Error is set, keyed by Success.
type BatchItem struct {
	Success  bool           `json:"success"`
	Prospect string         `json:"prospect"`
	Result   *MonitorResult `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// BatchSummary aggregates one batch run. Derived, never stored.
type BatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	WithNews   int `json:"withNews"`
}

// BatchResult is the full outcome of one batch run, items in input order.
type BatchResult struct {
	RunID   string       `json:"runId"`
	Items   []BatchItem  `json:"results"`
	Summary BatchSummary `json:"summary"`
}
