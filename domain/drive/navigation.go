package drive

// Breadcrumb is one folder ancestor in the descent trail.
type Breadcrumb struct {
	FolderID    string
	DisplayName string
}

// NavigationState is the per-session view state: active source, breadcrumb
// trail, search query, sort/filter settings, and the delta continuation
// cursor. It is a value type; every transition returns a new state so that
// transitions stay deterministic and unit-testable.
type NavigationState struct {
	Source        SourceKind
	Breadcrumbs   []Breadcrumb
	Query         string
	Sort          SortOption
	Last7DaysOnly bool
	DeltaCursor   string
}

// NewNavigationState returns the initial state: the Recent view with the
// default modified-descending sort.
func NewNavigationState() NavigationState {
	return NavigationState{
		Source: SourceRecent,
		Sort:   SortModifiedDesc,
	}
}

// AtRoot reports whether the view is at a listing root (no folder descent).
func (s NavigationState) AtRoot() bool {
	return len(s.Breadcrumbs) == 0
}

// CurrentFolder returns the folder whose children are displayed, if any.
func (s NavigationState) CurrentFolder() (Breadcrumb, bool) {
	if len(s.Breadcrumbs) == 0 {
		return Breadcrumb{}, false
	}
	return s.Breadcrumbs[len(s.Breadcrumbs)-1], true
}

// EnterRecent switches to the recent-items view.
func (s NavigationState) EnterRecent() NavigationState {
	s.Source = SourceRecent
	s.Breadcrumbs = nil
	s.Query = ""
	return s
}

// EnterAll switches to the delta-backed full listing. Re-entering always
// restarts delta paging from scratch, so the cursor is cleared here rather
// than on exit.
func (s NavigationState) EnterAll() NavigationState {
	s.Source = SourceAll
	s.Breadcrumbs = nil
	s.Query = ""
	s.DeltaCursor = ""
	return s
}

// EnterShared switches to the shared-with-me view.
func (s NavigationState) EnterShared() NavigationState {
	s.Source = SourceShared
	s.Breadcrumbs = nil
	s.Query = ""
	return s
}

// EnterSearch switches to the search view for the given query.
func (s NavigationState) EnterSearch(query string) NavigationState {
	s.Source = SourceSearch
	s.Breadcrumbs = nil
	s.Query = query
	return s
}

// EnterFolder descends into a folder, appending it to the breadcrumb trail.
func (s NavigationState) EnterFolder(folderID, displayName string) NavigationState {
	crumbs := make([]Breadcrumb, len(s.Breadcrumbs), len(s.Breadcrumbs)+1)
	copy(crumbs, s.Breadcrumbs)
	s.Breadcrumbs = append(crumbs, Breadcrumb{FolderID: folderID, DisplayName: displayName})
	s.Source = SourceFolder
	s.Query = ""
	return s
}

// Back pops one breadcrumb. When the trail empties the view lands on Recent.
func (s NavigationState) Back() NavigationState {
	if len(s.Breadcrumbs) <= 1 {
		return s.EnterRecent()
	}
	crumbs := make([]Breadcrumb, len(s.Breadcrumbs)-1)
	copy(crumbs, s.Breadcrumbs[:len(s.Breadcrumbs)-1])
	s.Breadcrumbs = crumbs
	s.Source = SourceFolder
	return s
}

// CrumbTo truncates the trail to the clicked ancestor, making it the
// displayed folder. Out-of-range indexes leave the state unchanged.
func (s NavigationState) CrumbTo(index int) NavigationState {
	if index < 0 || index >= len(s.Breadcrumbs) {
		return s
	}
	crumbs := make([]Breadcrumb, index+1)
	copy(crumbs, s.Breadcrumbs[:index+1])
	s.Breadcrumbs = crumbs
	s.Source = SourceFolder
	return s
}

// WithSort changes the sort option in place.
func (s NavigationState) WithSort(sort SortOption) NavigationState {
	s.Sort = sort
	return s
}

// WithFilter toggles the last-7-days filter.
func (s NavigationState) WithFilter(last7DaysOnly bool) NavigationState {
	s.Last7DaysOnly = last7DaysOnly
	return s
}

// WithDeltaCursor records the continuation cursor for the next delta page.
func (s NavigationState) WithDeltaCursor(cursor string) NavigationState {
	s.DeltaCursor = cursor
	return s
}
