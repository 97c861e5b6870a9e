package recommend

// Kind tags how a Result was produced.
type Kind int

const (
	// KindNotFound means neither the containment pass nor the exact match found a course.
	KindNotFound Kind = iota
	// KindContainment means the query was a substring of one or more clean titles.
	KindContainment
	// KindSimilar means the normalized query matched a course exactly and
	// the titles are its most similar courses.
	KindSimilar
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindContainment:
		return "containment"
	case KindSimilar:
		return "similar"
	default:
		return "not_found"
	}
}

// NotFoundMessage is the single line shown when nothing matches.
const NotFoundMessage = "No exact match found. Try a similar keyword!"

// DefaultLimit is the number of titles returned when no limit is given.
const DefaultLimit = 6

// Result is the outcome of a recommendation.
type Result struct {
	Query string
	Kind  Kind

	// Titles are the recommended course titles in rank order.
	// Empty for KindNotFound and when the limit is zero.
	Titles []string

	// Indices are the course rows behind Titles.
	Indices []int

	// Scores holds the similarity of each title to the matched course.
	// Only set for KindSimilar.
	Scores []float64

	// MatchedIndex is the course row the normalized query matched, or -1.
	MatchedIndex int
}

// Found reports whether any course matched the query.
func (r Result) Found() bool {
	return r.Kind != KindNotFound
}

// Lines renders the result as a list of display strings: the titles, or
// the not-found message.
func (r Result) Lines() []string {
	if r.Kind == KindNotFound {
		return []string{NotFoundMessage}
	}
	lines := make([]string, len(r.Titles))
	copy(lines, r.Titles)
	return lines
}
