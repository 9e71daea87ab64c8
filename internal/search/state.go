package search

// State is the query state behind a search page. Changing the text, the type
// filter or the sort resets the page to 1; only SetPage moves between pages.
type State struct {
	q Query
}

// NewState creates a state at page 1 with default paging
func NewState() *State {
	return &State{q: normalize(Query{})}
}

// Query returns a copy of the current query
func (s *State) Query() Query {
	q := s.q
	q.Types = append([]ItemType(nil), s.q.Types...)
	return q
}

// SetQuery changes the search text
func (s *State) SetQuery(text string) {
	s.q.Text = text
	s.q.Page = 1
}

// SetTypes changes the type filter
func (s *State) SetTypes(types []ItemType) {
	s.q.Types = append([]ItemType(nil), types...)
	s.q.Page = 1
}

// SetSort changes the result order
func (s *State) SetSort(mode SortMode) {
	s.q.Sort = mode
	s.q.Page = 1
}

// SetPage moves to page n (clamped to 1)
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.q.Page = n
}

// Run searches items with the current state
func (s *State) Run(items []Item) Result {
	return Search(items, s.q)
}
