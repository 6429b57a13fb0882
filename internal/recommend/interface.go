package recommend

// Recommender serves the search box: suggestions while typing and the
// follow-up query for a selected suggestion.
type Recommender interface {
	Suggest(q string, limit int) ([]Suggestion, error)
	LastMatches(q string) (*QueryResult, error)
}
