package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dochub/domain/contracts"
	"dochub/domain/drive"
	"dochub/test/helpers"
)

func newTestSelection(fixture *helpers.GatewayFixture, canEditLabels bool) *SelectionService {
	listing := NewListingService(fixture.Gateway, 25)
	return NewSelectionService(fixture.Gateway, listing, nil, canEditLabels)
}

func notFoundErr(op string) error {
	return contracts.NewGatewayError(op, contracts.NotFound, errors.New("status 404"))
}

func TestSelectionService_Select_FetchesPrimaryMetadata(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "application/vnd.ms-excel", nil))

	service := newTestSelection(fixture, false)
	snap, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)

	require.NoError(t, err)
	assert.Equal(t, "item-1", snap.ItemID)
	assert.Equal(t, helpers.TestDriveID, snap.DriveID)
	assert.Equal(t, "budget.xlsx", snap.Detail.Item.Name)
	assert.Equal(t, "Excel spreadsheet", snap.FriendlyType)
	assert.False(t, snap.NotFound)

	// Facets start unloaded until explicitly requested.
	assert.Equal(t, drive.FacetUnloaded, snap.Classification.Status)
	assert.Equal(t, drive.FacetUnloaded, snap.Access.Status)
	assert.Equal(t, drive.FacetUnloaded, snap.Versions.Status)
	assert.Equal(t, drive.FacetUnloaded, snap.Security.Status)
}

func TestSelectionService_Select_ResolvesDriveWhenHintMissing(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectResolve()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "notes.txt", "text/plain", nil))

	service := newTestSelection(fixture, false)
	snap, err := service.Select(context.Background(), "item-1", "")

	require.NoError(t, err)
	assert.Equal(t, helpers.TestDriveID, snap.DriveID)
}

func TestSelectionService_Select_NotFoundOffersFallback(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.Gateway.On("GetItemWithFields", mock.Anything, helpers.TestDriveID, "ghost").
		Return(drive.ItemDetail{}, notFoundErr("get_item_with_fields"))
	fixture.Gateway.On("GetItem", mock.Anything, helpers.TestDriveID, "ghost").
		Return(helpers.Data.Item("ghost", "orphan.docx", 1), nil)

	service := newTestSelection(fixture, false)
	snap, err := service.Select(context.Background(), "ghost", helpers.TestDriveID)

	require.NoError(t, err)
	assert.True(t, snap.NotFound)
	assert.Equal(t, "orphan.docx", snap.FallbackName)
}

func TestSelectionService_Select_NotFoundWithFailedNameRecovery(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.Gateway.On("GetItemWithFields", mock.Anything, helpers.TestDriveID, "ghost").
		Return(drive.ItemDetail{}, notFoundErr("get_item_with_fields"))
	fixture.Gateway.On("GetItem", mock.Anything, helpers.TestDriveID, "ghost").
		Return(drive.ItemRecord{}, notFoundErr("get_item"))

	service := newTestSelection(fixture, false)
	snap, err := service.Select(context.Background(), "ghost", helpers.TestDriveID)

	require.NoError(t, err)
	assert.True(t, snap.NotFound)
	assert.Empty(t, snap.FallbackName)
}

func TestSelectionService_Select_FailureClearsSelection(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.Gateway.On("GetItemWithFields", mock.Anything, helpers.TestDriveID, "item-1").
		Return(drive.ItemDetail{}, errors.New("gateway unavailable"))

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)

	require.Error(t, err)
	_, ok := service.Snapshot()
	assert.False(t, ok)
}

func TestSelectionService_LoadClassification(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", map[string]string{
		drive.FieldDepartment: "Finance",
		drive.FieldProject:    "",
		drive.FieldCategory:   "",
	}))
	fixture.Gateway.On("ListProjects", mock.Anything).Return([]string{"Apollo", "Borealis"}, nil)

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	service.LoadClassification(context.Background())

	snap, ok := service.Snapshot()
	require.True(t, ok)
	require.Equal(t, drive.FacetLoaded, snap.Classification.Status)
	assert.Equal(t, "Finance", snap.Classification.Data.Department)
	// A populated field means the panel starts read-only.
	assert.False(t, snap.Classification.Data.Editable)
	assert.Equal(t, []string{"Apollo", "Borealis"}, snap.Classification.Data.Projects)
}

func TestSelectionService_LoadClassification_ProjectListFailureDegrades(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", map[string]string{
		drive.FieldDepartment: "",
	}))
	fixture.Gateway.On("ListProjects", mock.Anything).Return(nil, errors.New("list missing"))

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	service.LoadClassification(context.Background())

	snap, _ := service.Snapshot()
	require.Equal(t, drive.FacetLoaded, snap.Classification.Status)
	assert.Empty(t, snap.Classification.Data.Projects)
	assert.True(t, snap.Classification.Data.Editable)
}

func TestSelectionService_LoadAccess_FailureIsolatedToFacet(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", nil))
	fixture.Gateway.On("ItemActivities", mock.Anything, helpers.TestDriveID, "item-1", activityTop).
		Return(nil, errors.New("activities unavailable"))

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	service.LoadAccess(context.Background())

	snap, _ := service.Snapshot()
	assert.Equal(t, drive.FacetFailed, snap.Access.Status)
	assert.Contains(t, snap.Access.Reason, "activities unavailable")
	// The rest of the panel is untouched.
	assert.Equal(t, "budget.xlsx", snap.Detail.Item.Name)
	assert.Equal(t, drive.FacetUnloaded, snap.Versions.Status)
}

func TestSelectionService_LoadVersions(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", nil))
	fixture.Gateway.On("ItemVersions", mock.Anything, helpers.TestDriveID, "item-1", versionTop).
		Return([]drive.VersionRecord{
			{ID: "2.0", Label: "2.0", ModifiedBy: "Avery Chen"},
			{ID: "1.0", Label: "1.0", ModifiedBy: "Avery Chen"},
		}, nil)

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	service.LoadVersions(context.Background())

	snap, _ := service.Snapshot()
	require.Equal(t, drive.FacetLoaded, snap.Versions.Status)
	require.Len(t, snap.Versions.Data, 2)
	assert.Equal(t, "2.0", snap.Versions.Data[0].ID)
}

func TestSelectionService_LoadSecurity_SubFetchFailuresDegradeIndependently(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", nil))
	fixture.Gateway.On("GetSensitivityLabel", mock.Anything, helpers.TestDriveID, "item-1").
		Return(drive.SensitivityLabel{ID: "lbl-1", DisplayName: "Confidential"}, nil)
	fixture.Gateway.On("GetRetentionLabel", mock.Anything, helpers.TestDriveID, "item-1").
		Return(drive.RetentionLabel{}, errors.New("retention endpoint down"))
	fixture.Gateway.On("ListConditionalAccessPolicies", mock.Anything).
		Return([]drive.AccessPolicy{
			{ID: "p1", DisplayName: "Require MFA", State: "enabled"},
			{ID: "p2", DisplayName: "Block legacy auth", State: "disabled"},
		}, nil)
	fixture.Gateway.On("ListInformationBarriers", mock.Anything).
		Return(nil, errors.New("barriers forbidden"))

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	service.LoadSecurity(context.Background())

	snap, _ := service.Snapshot()
	require.Equal(t, drive.FacetLoaded, snap.Security.Status)
	posture := snap.Security.Data
	assert.Equal(t, "Confidential", posture.SensitivityLabel)
	assert.Equal(t, drive.UnavailableMarker, posture.RetentionLabel)
	assert.Equal(t, "1 of 2 policies enabled", posture.AccessPolicySummary)
	assert.True(t, posture.BarriersUnavailable)
}

func TestSelectionService_LoadSecurity_EmptyLabelsRenderAsNone(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", nil))
	fixture.Gateway.On("GetSensitivityLabel", mock.Anything, helpers.TestDriveID, "item-1").
		Return(drive.SensitivityLabel{}, nil)
	fixture.Gateway.On("GetRetentionLabel", mock.Anything, helpers.TestDriveID, "item-1").
		Return(drive.RetentionLabel{}, nil)
	fixture.Gateway.On("ListConditionalAccessPolicies", mock.Anything).
		Return([]drive.AccessPolicy{}, nil)
	fixture.Gateway.On("ListInformationBarriers", mock.Anything).
		Return([]string{}, nil)

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	service.LoadSecurity(context.Background())

	snap, _ := service.Snapshot()
	posture := snap.Security.Data
	assert.Equal(t, "None", posture.SensitivityLabel)
	assert.Equal(t, "None", posture.RetentionLabel)
	assert.Equal(t, "No policies", posture.AccessPolicySummary)
	assert.False(t, posture.BarriersUnavailable)
}

func TestSelectionService_FacetResultForSupersededSelectionIsDiscarded(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-a", helpers.Data.Detail("item-a", "first.docx", "", nil))
	fixture.ExpectDetail("item-b", helpers.Data.Detail("item-b", "second.docx", "", nil))

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-a", helpers.TestDriveID)
	require.NoError(t, err)

	fixture.Gateway.On("ItemActivities", mock.Anything, helpers.TestDriveID, "item-a", activityTop).
		Run(func(args mock.Arguments) {
			// The user selects another item while the facet fetch is in flight.
			_, selErr := service.Select(context.Background(), "item-b", helpers.TestDriveID)
			assert.NoError(t, selErr)
		}).
		Return([]drive.ActivityRecord{{Actor: "Avery Chen", Action: drive.ActionEdited}}, nil)

	service.LoadAccess(context.Background())

	snap, ok := service.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "item-b", snap.ItemID)
	// The late result for item-a must not bleed into item-b's panel.
	assert.Equal(t, drive.FacetUnloaded, snap.Access.Status)
}

func TestSelectionService_BeginClassificationEdit(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", map[string]string{
		drive.FieldDepartment: "Finance",
	}))
	fixture.Gateway.On("ListProjects", mock.Anything).Return([]string{"Apollo"}, nil)

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	// Edit mode requires a loaded classification facet.
	_, ok := service.BeginClassificationEdit()
	assert.False(t, ok)

	service.LoadClassification(context.Background())

	snap, ok := service.BeginClassificationEdit()
	require.True(t, ok)
	assert.True(t, snap.Classification.Data.Editable)
}

func TestSelectionService_Clear(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectDetail("item-1", helpers.Data.Detail("item-1", "budget.xlsx", "", nil))

	service := newTestSelection(fixture, false)
	_, err := service.Select(context.Background(), "item-1", helpers.TestDriveID)
	require.NoError(t, err)

	service.Clear()

	_, ok := service.Snapshot()
	assert.False(t, ok)
}
