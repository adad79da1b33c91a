package request

// SearchRequest carries the catalog filters. All fields are optional and
// nothing is rejected: an entirely empty request is a zero-match result,
// a filter longer than any catalog value simply matches nothing.
type SearchRequest struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
