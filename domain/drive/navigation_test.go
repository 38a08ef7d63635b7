package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNavigationState_Defaults(t *testing.T) {
	state := NewNavigationState()

	assert.Equal(t, SourceRecent, state.Source)
	assert.Equal(t, SortModifiedDesc, state.Sort)
	assert.True(t, state.AtRoot())
	assert.False(t, state.Last7DaysOnly)
}

func TestNavigationState_SourceSwitchesClearDescent(t *testing.T) {
	state := NewNavigationState().
		EnterFolder("folder-1", "Reports").
		EnterFolder("folder-2", "Q1")

	tests := []struct {
		name       string
		transition func(NavigationState) NavigationState
		source     SourceKind
	}{
		{name: "recent", transition: NavigationState.EnterRecent, source: SourceRecent},
		{name: "all", transition: NavigationState.EnterAll, source: SourceAll},
		{name: "shared", transition: NavigationState.EnterShared, source: SourceShared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := tt.transition(state)
			assert.Equal(t, tt.source, next.Source)
			assert.True(t, next.AtRoot())
			assert.Empty(t, next.Query)
		})
	}
}

func TestNavigationState_EnterAllRestartsDeltaPaging(t *testing.T) {
	state := NewNavigationState().EnterAll().WithDeltaCursor("cursor-page-2")
	require.Equal(t, "cursor-page-2", state.DeltaCursor)

	reentered := state.EnterRecent().EnterAll()
	assert.Empty(t, reentered.DeltaCursor)
}

func TestNavigationState_FolderDescentAndBack(t *testing.T) {
	state := NewNavigationState().
		EnterFolder("a", "Alpha").
		EnterFolder("b", "Bravo").
		EnterFolder("c", "Charlie")

	require.Equal(t, SourceFolder, state.Source)
	require.Len(t, state.Breadcrumbs, 3)

	state = state.Back()
	current, ok := state.CurrentFolder()
	require.True(t, ok)
	assert.Equal(t, "b", current.FolderID)

	state = state.Back()
	current, ok = state.CurrentFolder()
	require.True(t, ok)
	assert.Equal(t, "a", current.FolderID)

	// Popping the last crumb lands on Recent, not an empty folder view.
	state = state.Back()
	assert.Equal(t, SourceRecent, state.Source)
	assert.True(t, state.AtRoot())
}

func TestNavigationState_CrumbTo(t *testing.T) {
	state := NewNavigationState().
		EnterFolder("a", "Alpha").
		EnterFolder("b", "Bravo").
		EnterFolder("c", "Charlie")

	truncated := state.CrumbTo(0)
	require.Len(t, truncated.Breadcrumbs, 1)
	current, ok := truncated.CurrentFolder()
	require.True(t, ok)
	assert.Equal(t, "a", current.FolderID)
	assert.Equal(t, SourceFolder, truncated.Source)

	// Out-of-range clicks change nothing.
	assert.Equal(t, state, state.CrumbTo(3))
	assert.Equal(t, state, state.CrumbTo(-1))
}

func TestNavigationState_EnterFolderDoesNotShareCrumbSlices(t *testing.T) {
	base := NewNavigationState().EnterFolder("a", "Alpha")

	left := base.EnterFolder("b", "Bravo")
	right := base.EnterFolder("c", "Charlie")

	assert.Equal(t, "b", left.Breadcrumbs[1].FolderID)
	assert.Equal(t, "c", right.Breadcrumbs[1].FolderID)
	assert.Len(t, base.Breadcrumbs, 1)
}

func TestNavigationState_EnterSearch(t *testing.T) {
	state := NewNavigationState().
		EnterFolder("a", "Alpha").
		EnterSearch("report")

	assert.Equal(t, SourceSearch, state.Source)
	assert.Equal(t, "report", state.Query)
	assert.True(t, state.AtRoot())
}

func TestNavigationState_SortAndFilterPersistAcrossSources(t *testing.T) {
	state := NewNavigationState().
		WithSort(SortNameAsc).
		WithFilter(true).
		EnterShared()

	assert.Equal(t, SortNameAsc, state.Sort)
	assert.True(t, state.Last7DaysOnly)
}
