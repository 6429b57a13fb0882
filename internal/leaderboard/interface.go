package leaderboard

// LeaderboardStore defines the leaderboard query contracts. Conservative
// and ByMean use different rating formulas and produce different orderings,
// so they are exposed as distinct operations.
type LeaderboardStore interface {
	// Conservative ranks by the lower-bound estimate mu - 3*sigma.
	Conservative(competition, season string) ([]Entry, error)
	// ByMean ranks by the raw rating mean.
	ByMean(competition, season string) ([]Entry, error)
	// AllTime ranks every human by their best conservative rating
	// across all competitions.
	AllTime() ([]Entry, error)
}
