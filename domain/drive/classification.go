package drive

// Metadata field names the classification facet reads and writes.
const (
	FieldDepartment = "Department"
	FieldProject    = "Project"
	FieldCategory   = "Category"
)

// classificationFields is the fixed set of fields the facet manages.
var classificationFields = []string{FieldDepartment, FieldProject, FieldCategory}

// Classification is the department/project/category facet of a selected
// item, plus its edit-mode flag and the tenant project reference list.
type Classification struct {
	Department string
	Project    string
	Category   string

	// Editable is false when any field arrived populated; the panel then
	// starts read-only behind an explicit "Edit Metadata" action.
	Editable bool

	// Projects is the tenant project reference list, fetched per load.
	Projects []string

	// SchemaFields are the metadata field names the item's schema actually
	// exposes. Saves only patch keys present here.
	SchemaFields map[string]bool
}

// NewClassification builds the facet data from fetched field values and the
// project reference list. The panel starts read-only iff any of the three
// fields is pre-populated.
func NewClassification(fields map[string]string, projects []string) Classification {
	c := Classification{
		Department:   fields[FieldDepartment],
		Project:      fields[FieldProject],
		Category:     fields[FieldCategory],
		Projects:     projects,
		SchemaFields: make(map[string]bool, len(fields)),
	}
	for name := range fields {
		c.SchemaFields[name] = true
	}
	c.Editable = c.Department == "" && c.Project == "" && c.Category == ""
	return c
}

// HasAnyValue reports whether any classification field is populated.
func (c Classification) HasAnyValue() bool {
	return c.Department != "" || c.Project != "" || c.Category != ""
}

// PatchableFields returns the subset of the desired values whose keys exist
// in the item's schema. Keys absent from the schema are never introduced.
func (c Classification) PatchableFields(department, project, category string) map[string]string {
	desired := map[string]string{
		FieldDepartment: department,
		FieldProject:    project,
		FieldCategory:   category,
	}
	patch := make(map[string]string)
	for _, name := range classificationFields {
		if c.SchemaFields[name] {
			patch[name] = desired[name]
		}
	}
	return patch
}

// SchemaSupportsSave reports whether the schema exposes at least one of the
// classification fields. When false a save is a user-visible no-op.
func (c Classification) SchemaSupportsSave() bool {
	for _, name := range classificationFields {
		if c.SchemaFields[name] {
			return true
		}
	}
	return false
}
