package presenters

import (
	"dochub/application"
	"dochub/domain/drive"
)

// ClassificationVM is the classification facet view model.
type ClassificationVM struct {
	Status      string   `json:"status"`
	Reason      string   `json:"reason,omitempty"`
	Department  string   `json:"department"`
	Project     string   `json:"project"`
	Category    string   `json:"category"`
	Editable    bool     `json:"editable"`
	ButtonLabel string   `json:"button_label"`
	Projects    []string `json:"projects"`
	CanSave     bool     `json:"can_save"`
}

// ActivityVM is one access-history row.
type ActivityVM struct {
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// AccessVM is the access-history facet view model.
type AccessVM struct {
	Status  string       `json:"status"`
	Reason  string       `json:"reason,omitempty"`
	Entries []ActivityVM `json:"entries"`
}

// VersionVM is one version-history row.
type VersionVM struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Modified   string `json:"modified"`
	ModifiedBy string `json:"modified_by"`
	SizeKB     string `json:"size_kb"`
}

// VersionsVM is the version-history facet view model.
type VersionsVM struct {
	Status  string      `json:"status"`
	Reason  string      `json:"reason,omitempty"`
	Entries []VersionVM `json:"entries"`
}

// SecurityVM is the security-posture facet view model. Sub-sections that
// failed carry the Unavailable marker individually.
type SecurityVM struct {
	Status            string   `json:"status"`
	Reason            string   `json:"reason,omitempty"`
	SensitivityLabel  string   `json:"sensitivity_label"`
	RetentionLabel    string   `json:"retention_label"`
	ConditionalAccess string   `json:"conditional_access"`
	Barriers          []string `json:"barriers"`
}

// SelectionVM is the full detail-panel view model.
type SelectionVM struct {
	ItemID        string `json:"item_id"`
	DriveID       string `json:"drive_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	SizeKB        string `json:"size_kb"`
	Modified      string `json:"modified"`
	ModifiedBy    string `json:"modified_by"`
	WebURL        string `json:"web_url"`
	NotFound      bool   `json:"not_found"`
	FallbackName  string `json:"fallback_name,omitempty"`
	CanEditLabels bool   `json:"can_edit_labels"`

	Classification ClassificationVM `json:"classification"`
	Access         AccessVM         `json:"access"`
	Versions       VersionsVM       `json:"versions"`
	Security       SecurityVM       `json:"security"`
}

// LabelVM is one entry of the sensitivity label catalog.
type LabelVM struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SelectionPresenter transforms selection snapshots for the renderer.
type SelectionPresenter struct{}

// NewSelectionPresenter creates a selection presenter.
func NewSelectionPresenter() *SelectionPresenter {
	return &SelectionPresenter{}
}

// ToSelectionViewModel converts a selection snapshot to its view model.
func (p *SelectionPresenter) ToSelectionViewModel(snap application.SelectionSnapshot) *SelectionVM {
	item := snap.Detail.Item
	name := item.GetDisplayName()
	if snap.NotFound && snap.FallbackName != "" {
		name = snap.FallbackName
	}

	return &SelectionVM{
		ItemID:         snap.ItemID,
		DriveID:        snap.DriveID,
		Name:           name,
		Type:           snap.FriendlyType,
		SizeKB:         formatSizeKB(item.SizeBytes),
		Modified:       formatTimestamp(item.LastModifiedAt),
		ModifiedBy:     item.ModifiedBy,
		WebURL:         item.WebURL,
		NotFound:       snap.NotFound,
		FallbackName:   snap.FallbackName,
		CanEditLabels:  snap.CanEditLabels,
		Classification: p.toClassificationVM(snap.Classification),
		Access:         p.toAccessVM(snap.Access),
		Versions:       p.toVersionsVM(snap.Versions),
		Security:       p.toSecurityVM(snap.Security),
	}
}

// ToLabelViewModels converts the sensitivity label catalog.
func (p *SelectionPresenter) ToLabelViewModels(labels []drive.SensitivityLabel) []LabelVM {
	out := make([]LabelVM, 0, len(labels))
	for _, label := range labels {
		out = append(out, LabelVM{ID: label.ID, Name: label.DisplayName, Description: label.Description})
	}
	return out
}

func (p *SelectionPresenter) toClassificationVM(facet drive.ClassificationFacet) ClassificationVM {
	vm := ClassificationVM{
		Status:   string(facet.Status),
		Reason:   facet.Reason,
		Projects: []string{},
	}
	if facet.Status != drive.FacetLoaded {
		return vm
	}
	data := facet.Data
	vm.Department = data.Department
	vm.Project = data.Project
	vm.Category = data.Category
	vm.Editable = data.Editable
	vm.CanSave = data.SchemaSupportsSave()
	if data.Projects != nil {
		vm.Projects = data.Projects
	}
	if data.Editable {
		vm.ButtonLabel = "Save Metadata"
	} else {
		vm.ButtonLabel = "Edit Metadata"
	}
	return vm
}

func (p *SelectionPresenter) toAccessVM(facet drive.AccessFacet) AccessVM {
	vm := AccessVM{
		Status:  string(facet.Status),
		Reason:  facet.Reason,
		Entries: []ActivityVM{},
	}
	for _, record := range facet.Data {
		vm.Entries = append(vm.Entries, ActivityVM{
			Actor:     record.Actor,
			Action:    record.Describe(),
			Timestamp: formatTimestamp(record.Timestamp),
		})
	}
	return vm
}

func (p *SelectionPresenter) toVersionsVM(facet drive.VersionsFacet) VersionsVM {
	vm := VersionsVM{
		Status:  string(facet.Status),
		Reason:  facet.Reason,
		Entries: []VersionVM{},
	}
	for _, record := range facet.Data {
		vm.Entries = append(vm.Entries, VersionVM{
			ID:         record.ID,
			Label:      record.Label,
			Modified:   formatTimestamp(record.Timestamp),
			ModifiedBy: record.ModifiedBy,
			SizeKB:     formatSizeKB(record.SizeBytes),
		})
	}
	return vm
}

func (p *SelectionPresenter) toSecurityVM(facet drive.SecurityFacet) SecurityVM {
	vm := SecurityVM{
		Status:   string(facet.Status),
		Reason:   facet.Reason,
		Barriers: []string{},
	}
	if facet.Status != drive.FacetLoaded {
		return vm
	}
	data := facet.Data
	vm.SensitivityLabel = data.SensitivityLabel
	vm.RetentionLabel = data.RetentionLabel
	vm.ConditionalAccess = data.AccessPolicySummary
	if data.BarriersUnavailable {
		vm.Barriers = []string{drive.UnavailableMarker}
	} else if data.InformationBarriers != nil {
		vm.Barriers = data.InformationBarriers
	}
	return vm
}
