package domain

// Tag is a production work-order identifier (cartellino) owned by the
// external catalog service. This core never creates, mutates, or deletes
// tags; it references them by ID and keeps a read-side snapshot of the
// descriptive attributes for tree display and number matching.
type Tag struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	Commessa    string `json:"commessa,omitempty"`
	Article     string `json:"article,omitempty"`
	Description string `json:"description,omitempty"`
	Line        string `json:"line,omitempty"`
	Client      string `json:"client,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
}

// SearchFilters is the seven-field filter set resolved against the catalog.
// Filters combine with logical AND; each text filter is a case-insensitive
// partial match.
type SearchFilters struct {
	Number      string `json:"number,omitempty"`
	Commessa    string `json:"commessa,omitempty"`
	Article     string `json:"article,omitempty"`
	Description string `json:"description,omitempty"`
	Line        string `json:"line,omitempty"`
	Client      string `json:"client,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (f SearchFilters) IsEmpty() bool {
	return f.Number == "" &&
		f.Commessa == "" &&
		f.Article == "" &&
		f.Description == "" &&
		f.Line == "" &&
		f.Client == "" &&
		f.OrderNumber == ""
}

// ArticleGroup clusters search results by article code for display.
type ArticleGroup struct {
	Article     string `json:"article"`
	Description string `json:"description,omitempty"`
	Tags        []Tag  `json:"tags"`
}
