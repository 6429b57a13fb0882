package player

// PlayerStore defines the interface for resolving player identities and
// assembling the aggregate view for a human.
type PlayerStore interface {
	ResolveIdentities(humanID string) ([]Identity, error)
	ResolveRatings(identities []Identity) ([]RatingRecord, error)
	ResolveMatches(identities []Identity) ([]MatchRecord, error)
	Aggregate(humanID string) (*Aggregate, error)
	ListPlayers() ([]Listing, error)
}
