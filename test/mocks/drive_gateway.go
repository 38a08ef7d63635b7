package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"dochub/domain/drive"
)

// MockDriveGateway implements contracts.DriveGateway for testing
type MockDriveGateway struct {
	mock.Mock
}

func (m *MockDriveGateway) ResolveSite(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDriveGateway) ResolveDrive(ctx context.Context, siteID string) (string, error) {
	args := m.Called(ctx, siteID)
	return args.String(0), args.Error(1)
}

func (m *MockDriveGateway) ListChildren(ctx context.Context, driveID, folderID string) ([]drive.ItemRecord, error) {
	args := m.Called(ctx, driveID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) ListChildrenByPath(ctx context.Context, driveID, folderPath string) ([]drive.ItemRecord, error) {
	args := m.Called(ctx, driveID, folderPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) ListFolders(ctx context.Context, driveID string) ([]drive.ItemRecord, error) {
	args := m.Called(ctx, driveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) DeltaPage(ctx context.Context, driveID, cursor string, pageSize int) (drive.DeltaPage, error) {
	args := m.Called(ctx, driveID, cursor, pageSize)
	return args.Get(0).(drive.DeltaPage), args.Error(1)
}

func (m *MockDriveGateway) Search(ctx context.Context, query string) ([]drive.ItemRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) Recent(ctx context.Context) ([]drive.ItemRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) SharedWithMe(ctx context.Context) ([]drive.ItemRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) GetItem(ctx context.Context, driveID, itemID string) (drive.ItemRecord, error) {
	args := m.Called(ctx, driveID, itemID)
	return args.Get(0).(drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) GetItemWithFields(ctx context.Context, driveID, itemID string) (drive.ItemDetail, error) {
	args := m.Called(ctx, driveID, itemID)
	return args.Get(0).(drive.ItemDetail), args.Error(1)
}

func (m *MockDriveGateway) GetMetadataFields(ctx context.Context, driveID, itemID string) (map[string]string, error) {
	args := m.Called(ctx, driveID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockDriveGateway) PatchMetadataFields(ctx context.Context, driveID, itemID string, fields map[string]string) error {
	args := m.Called(ctx, driveID, itemID, fields)
	return args.Error(0)
}

func (m *MockDriveGateway) ListProjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDriveGateway) GetSensitivityLabel(ctx context.Context, driveID, itemID string) (drive.SensitivityLabel, error) {
	args := m.Called(ctx, driveID, itemID)
	return args.Get(0).(drive.SensitivityLabel), args.Error(1)
}

func (m *MockDriveGateway) ListSensitivityLabels(ctx context.Context) ([]drive.SensitivityLabel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.SensitivityLabel), args.Error(1)
}

func (m *MockDriveGateway) AssignSensitivityLabel(ctx context.Context, driveID, itemID, labelID, justification string) error {
	args := m.Called(ctx, driveID, itemID, labelID, justification)
	return args.Error(0)
}

func (m *MockDriveGateway) GetRetentionLabel(ctx context.Context, driveID, itemID string) (drive.RetentionLabel, error) {
	args := m.Called(ctx, driveID, itemID)
	return args.Get(0).(drive.RetentionLabel), args.Error(1)
}

func (m *MockDriveGateway) ListConditionalAccessPolicies(ctx context.Context) ([]drive.AccessPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.AccessPolicy), args.Error(1)
}

func (m *MockDriveGateway) ListInformationBarriers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDriveGateway) ItemActivities(ctx context.Context, driveID, itemID string, top int) ([]drive.ActivityRecord, error) {
	args := m.Called(ctx, driveID, itemID, top)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.ActivityRecord), args.Error(1)
}

func (m *MockDriveGateway) ItemVersions(ctx context.Context, driveID, itemID string, top int) ([]drive.VersionRecord, error) {
	args := m.Called(ctx, driveID, itemID, top)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drive.VersionRecord), args.Error(1)
}

func (m *MockDriveGateway) RestoreVersion(ctx context.Context, driveID, itemID, versionID string) error {
	args := m.Called(ctx, driveID, itemID, versionID)
	return args.Error(0)
}

func (m *MockDriveGateway) UploadFile(ctx context.Context, name string, content io.Reader) (drive.ItemRecord, error) {
	args := m.Called(ctx, name, content)
	return args.Get(0).(drive.ItemRecord), args.Error(1)
}

func (m *MockDriveGateway) CopyToPersonalRoot(ctx context.Context, driveID, itemID, name string) error {
	args := m.Called(ctx, driveID, itemID, name)
	return args.Error(0)
}

func (m *MockDriveGateway) Me(ctx context.Context) (drive.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(drive.User), args.Error(1)
}
