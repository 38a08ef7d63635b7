package graphclient

import (
	"fmt"
	"strconv"
	"time"

	"dochub/domain/drive"
)

// toItemRecord normalizes a wire drive item into the domain snapshot type.
func toItemRecord(raw driveItemJSON) drive.ItemRecord {
	record := drive.ItemRecord{
		ID:        raw.ID,
		Name:      raw.Name,
		IsFolder:  raw.Folder != nil,
		Deleted:   raw.Deleted != nil,
		WebURL:    raw.WebURL,
		SizeBytes: raw.Size,
	}
	if raw.LastModifiedBy != nil {
		record.ModifiedBy = raw.LastModifiedBy.User.DisplayName
	}
	if raw.ParentReference != nil {
		record.ParentDriveID = raw.ParentReference.DriveID
	}
	record.LastModifiedAt = parseGraphTime(raw.LastModifiedDateTime)
	return record
}

// toItemRecords normalizes a wire page, unwrapping remoteItem for shared
// listings so downstream code always sees the real item's identifiers.
func toItemRecords(raws []driveItemJSON) []drive.ItemRecord {
	records := make([]drive.ItemRecord, 0, len(raws))
	for _, raw := range raws {
		if raw.RemoteItem != nil {
			remote := *raw.RemoteItem
			if remote.Name == "" {
				remote.Name = raw.Name
			}
			records = append(records, toItemRecord(remote))
			continue
		}
		records = append(records, toItemRecord(raw))
	}
	return records
}

func toItemDetail(raw driveItemJSON) drive.ItemDetail {
	detail := drive.ItemDetail{
		Item:   toItemRecord(raw),
		Fields: map[string]string{},
	}
	if raw.File != nil {
		detail.MimeType = raw.File.MimeType
	}
	if raw.ListItem != nil {
		detail.Fields = stringifyFields(raw.ListItem.Fields)
	}
	return detail
}

// stringifyFields flattens list-item field values to strings. Structured
// field values (arrays, objects) are not classification material and are
// dropped.
func stringifyFields(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			out[name] = v
		case float64:
			out[name] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[name] = strconv.FormatBool(v)
		case nil:
			out[name] = ""
		}
	}
	return out
}

func toSensitivityLabel(raw sensitivityLabelJSON) drive.SensitivityLabel {
	label := drive.SensitivityLabel{
		ID:          raw.ID,
		DisplayName: raw.DisplayName,
		Description: raw.Description,
	}
	if label.DisplayName == "" {
		label.DisplayName = raw.Name
	}
	if label.Description == "" {
		label.Description = raw.Tooltip
	}
	return label
}

func toRetentionLabel(raw retentionLabelJSON) drive.RetentionLabel {
	label := drive.RetentionLabel{
		DisplayName:    raw.Name,
		IsRecordLocked: raw.BehaviorDuringRetentionPeriod == "retainAsRecord",
	}
	if raw.RetentionSettings != nil && raw.RetentionSettings.RetentionPeriodDays > 0 {
		label.RetentionDuration = fmt.Sprintf("%d days", raw.RetentionSettings.RetentionPeriodDays)
	}
	if raw.LabelAppliedBy != nil {
		label.AppliedByDisplayName = raw.LabelAppliedBy.User.DisplayName
	}
	return label
}

func toAccessPolicy(raw accessPolicyJSON) drive.AccessPolicy {
	return drive.AccessPolicy{
		ID:          raw.ID,
		DisplayName: raw.DisplayName,
		State:       raw.State,
	}
}

// toActivityRecord classifies a wire activity into the access-history shape.
// Version events carry the new version label; everything unrecognized counts
// as a plain access.
func toActivityRecord(raw activityJSON) drive.ActivityRecord {
	record := drive.ActivityRecord{
		Actor:     raw.Actor.User.DisplayName,
		Action:    drive.ActionAccessed,
		Timestamp: parseGraphTime(raw.Times.RecordedDateTime),
	}
	switch {
	case raw.Action.Version != nil:
		record.Action = drive.ActionVersioned
		record.Version = raw.Action.Version.NewVersion
	case raw.Action.CheckIn != nil:
		record.Action = drive.ActionCheckedIn
	case raw.Action.Edit != nil:
		record.Action = drive.ActionEdited
	}
	return record
}

func toVersionRecord(raw versionJSON) drive.VersionRecord {
	record := drive.VersionRecord{
		ID:        raw.ID,
		Label:     raw.ID,
		SizeBytes: raw.Size,
		Timestamp: parseGraphTime(raw.LastModifiedDateTime),
	}
	if raw.LastModifiedBy != nil {
		record.ModifiedBy = raw.LastModifiedBy.User.DisplayName
	}
	return record
}

func toUser(raw userJSON) drive.User {
	user := drive.User{
		ID:          raw.ID,
		DisplayName: raw.DisplayName,
		Email:       raw.Mail,
	}
	if user.Email == "" {
		user.Email = raw.UserPrincipalName
	}
	return user
}

// parseGraphTime parses an RFC3339 timestamp; missing or malformed values
// decode as the zero time so the 7-day filter excludes them.
func parseGraphTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
