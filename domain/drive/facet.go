package drive

// FacetStatus is the lifecycle of one lazily loaded detail facet. Each facet
// transitions Unloaded -> Loading -> Loaded|Failed independently of its
// siblings.
type FacetStatus string

const (
	FacetUnloaded FacetStatus = "unloaded"
	FacetLoading  FacetStatus = "loading"
	FacetLoaded   FacetStatus = "loaded"
	FacetFailed   FacetStatus = "failed"
)

// ClassificationFacet holds the classification detail facet.
type ClassificationFacet struct {
	Status FacetStatus
	Reason string
	Data   Classification
}

// AccessFacet holds the access-history detail facet.
type AccessFacet struct {
	Status FacetStatus
	Reason string
	Data   []ActivityRecord
}

// VersionsFacet holds the version-history detail facet.
type VersionsFacet struct {
	Status FacetStatus
	Reason string
	Data   []VersionRecord
}

// SecurityFacet holds the security-posture detail facet.
type SecurityFacet struct {
	Status FacetStatus
	Reason string
	Data   SecurityPosture
}

// ItemDetail is the primary metadata of a selected item plus its list-item
// field values, fetched in one batched call.
type ItemDetail struct {
	Item     ItemRecord
	MimeType string
	Fields   map[string]string
}

// FriendlyTypeLabel derives the display type for the detail panel.
func (d ItemDetail) FriendlyTypeLabel() string {
	return FriendlyType(d.Item.Name, d.MimeType, d.Item.IsFolder)
}
