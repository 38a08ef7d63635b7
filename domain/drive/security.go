package drive

// UnavailableMarker is shown for a security sub-section whose fetch failed.
const UnavailableMarker = "Unavailable"

// SensitivityLabel is a compliance sensitivity classification.
type SensitivityLabel struct {
	ID          string
	DisplayName string
	Description string
}

// RetentionLabel is a compliance retention classification.
type RetentionLabel struct {
	DisplayName          string
	RetentionDuration    string
	IsRecordLocked       bool
	AppliedByDisplayName string
}

// AccessPolicy is one conditional access policy.
type AccessPolicy struct {
	ID          string
	DisplayName string
	State       string
}

// SecurityPosture aggregates the four independently fetched security
// sub-sections. Each sub-section degrades to UnavailableMarker on its own
// fetch failure without affecting the others.
type SecurityPosture struct {
	SensitivityLabel    string
	RetentionLabel      string
	AccessPolicySummary string
	InformationBarriers []string
	BarriersUnavailable bool
}
