package models

// TrendSignal is a short external news snippet used to enrich a generation
// prompt. Signals are ephemeral: produced fresh per request, never persisted.
type TrendSignal struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Snippet   string `json:"snippet"`
	URL       string `json:"url"`
	Sentiment string `json:"sentiment,omitempty"`
	Momentum  string `json:"momentum,omitempty"`
}
