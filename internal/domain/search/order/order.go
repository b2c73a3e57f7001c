package order

// Order is the final ranking criterion applied after score blending.
type Order string

// Supported orderings.
const (
	// Relevance keeps the blended-score descending order.
	Relevance  Order = "relevance"
	Rating     Order = "rating"
	Popularity Order = "popularity"
	Newest     Order = "newest"
)

// IsValid checks if the order is one of the supported values.
func (o Order) IsValid() bool {
	return o == Relevance || o == Rating || o == Popularity || o == Newest
}
