package presenters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dochub/application"
	"dochub/domain/drive"
)

func loadedClassification(data drive.Classification) drive.ClassificationFacet {
	return drive.ClassificationFacet{Status: drive.FacetLoaded, Data: data}
}

func TestSelectionPresenter_ButtonLabelFollowsEditMode(t *testing.T) {
	presenter := NewSelectionPresenter()

	readOnly := presenter.ToSelectionViewModel(application.SelectionSnapshot{
		Classification: loadedClassification(drive.Classification{
			Department: "Finance",
			Editable:   false,
			SchemaFields: map[string]bool{
				drive.FieldDepartment: true,
			},
		}),
	})
	assert.Equal(t, "Edit Metadata", readOnly.Classification.ButtonLabel)
	assert.False(t, readOnly.Classification.Editable)
	assert.True(t, readOnly.Classification.CanSave)

	editing := presenter.ToSelectionViewModel(application.SelectionSnapshot{
		Classification: loadedClassification(drive.Classification{
			Editable: true,
			SchemaFields: map[string]bool{
				drive.FieldDepartment: true,
			},
		}),
	})
	assert.Equal(t, "Save Metadata", editing.Classification.ButtonLabel)
	assert.True(t, editing.Classification.Editable)
}

func TestSelectionPresenter_UnloadedFacetsStayEmpty(t *testing.T) {
	presenter := NewSelectionPresenter()

	vm := presenter.ToSelectionViewModel(application.SelectionSnapshot{
		Classification: drive.ClassificationFacet{Status: drive.FacetUnloaded},
		Access:         drive.AccessFacet{Status: drive.FacetUnloaded},
		Versions:       drive.VersionsFacet{Status: drive.FacetUnloaded},
		Security:       drive.SecurityFacet{Status: drive.FacetUnloaded},
	})

	assert.Equal(t, string(drive.FacetUnloaded), vm.Classification.Status)
	assert.Empty(t, vm.Classification.ButtonLabel)
	assert.Empty(t, vm.Access.Entries)
	assert.Empty(t, vm.Versions.Entries)
	assert.Empty(t, vm.Security.SensitivityLabel)
}

func TestSelectionPresenter_NotFoundUsesFallbackName(t *testing.T) {
	presenter := NewSelectionPresenter()

	vm := presenter.ToSelectionViewModel(application.SelectionSnapshot{
		ItemID:       "ghost",
		NotFound:     true,
		FallbackName: "orphan.docx",
	})

	assert.Equal(t, "orphan.docx", vm.Name)
	assert.True(t, vm.NotFound)
}

func TestSelectionPresenter_AccessRowsUseActionDescriptions(t *testing.T) {
	presenter := NewSelectionPresenter()
	when := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	vm := presenter.ToSelectionViewModel(application.SelectionSnapshot{
		Access: drive.AccessFacet{
			Status: drive.FacetLoaded,
			Data: []drive.ActivityRecord{
				{Actor: "Avery Chen", Action: drive.ActionVersioned, Version: "2.0", Timestamp: when},
				{Actor: "Sam Ortiz", Action: drive.ActionEdited, Timestamp: when},
			},
		},
	})

	require.Len(t, vm.Access.Entries, 2)
	assert.Equal(t, "versioned (v2.0)", vm.Access.Entries[0].Action)
	assert.Equal(t, "Mar 10, 2025 09:30", vm.Access.Entries[0].Timestamp)
	assert.Equal(t, "edited", vm.Access.Entries[1].Action)
}

func TestSelectionPresenter_SecurityBarriersUnavailableMarker(t *testing.T) {
	presenter := NewSelectionPresenter()

	vm := presenter.ToSelectionViewModel(application.SelectionSnapshot{
		Security: drive.SecurityFacet{
			Status: drive.FacetLoaded,
			Data: drive.SecurityPosture{
				SensitivityLabel:    "Confidential",
				RetentionLabel:      "None",
				AccessPolicySummary: "1 of 2 policies enabled",
				BarriersUnavailable: true,
			},
		},
	})

	assert.Equal(t, "Confidential", vm.Security.SensitivityLabel)
	assert.Equal(t, []string{drive.UnavailableMarker}, vm.Security.Barriers)
}

func TestSelectionPresenter_ToLabelViewModels(t *testing.T) {
	presenter := NewSelectionPresenter()

	labels := presenter.ToLabelViewModels([]drive.SensitivityLabel{
		{ID: "lbl-1", DisplayName: "Public"},
		{ID: "lbl-2", DisplayName: "Confidential", Description: "Restricted distribution"},
	})

	require.Len(t, labels, 2)
	assert.Equal(t, "Public", labels[0].Name)
	assert.Equal(t, "Restricted distribution", labels[1].Description)
}
