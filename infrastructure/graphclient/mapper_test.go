package graphclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dochub/domain/drive"
)

func TestToActivityRecord_ClassifiesActions(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		action   drive.ActionKind
		version  string
		describe string
	}{
		{
			name:     "version_wins_over_edit",
			payload:  `{"actor": {"user": {"displayName": "Avery Chen"}}, "action": {"edit": {}, "version": {"newVersion": "2.0"}}}`,
			action:   drive.ActionVersioned,
			version:  "2.0",
			describe: "versioned (v2.0)",
		},
		{
			name:     "checkin",
			payload:  `{"action": {"checkin": {}}}`,
			action:   drive.ActionCheckedIn,
			describe: "checked-in",
		},
		{
			name:     "edit",
			payload:  `{"action": {"edit": {}}}`,
			action:   drive.ActionEdited,
			describe: "edited",
		},
		{
			name:     "unrecognized_counts_as_access",
			payload:  `{"action": {"comment": {}}}`,
			action:   drive.ActionAccessed,
			describe: "accessed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw activityJSON
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &raw))

			record := toActivityRecord(raw)
			assert.Equal(t, tt.action, record.Action)
			assert.Equal(t, tt.version, record.Version)
			assert.Equal(t, tt.describe, record.Describe())
		})
	}
}

func TestToRetentionLabel(t *testing.T) {
	raw := retentionLabelJSON{
		Name: "Finance Records",
		RetentionSettings: &struct {
			RetentionPeriodDays int `json:"retentionPeriodDays"`
		}{RetentionPeriodDays: 2555},
		BehaviorDuringRetentionPeriod: "retainAsRecord",
		LabelAppliedBy: &identitySetJSON{
			User: userJSON{DisplayName: "Avery Chen"},
		},
	}

	label := toRetentionLabel(raw)

	assert.Equal(t, "Finance Records", label.DisplayName)
	assert.Equal(t, "2555 days", label.RetentionDuration)
	assert.True(t, label.IsRecordLocked)
	assert.Equal(t, "Avery Chen", label.AppliedByDisplayName)
}

func TestToSensitivityLabel_Fallbacks(t *testing.T) {
	label := toSensitivityLabel(sensitivityLabelJSON{
		ID:      "lbl-1",
		Name:    "confidential",
		Tooltip: "Restricted distribution",
	})

	assert.Equal(t, "confidential", label.DisplayName)
	assert.Equal(t, "Restricted distribution", label.Description)
}

func TestParseGraphTime_MalformedDecodesAsZero(t *testing.T) {
	assert.True(t, parseGraphTime("").IsZero())
	assert.True(t, parseGraphTime("yesterday").IsZero())
	assert.False(t, parseGraphTime("2025-03-10T09:30:00Z").IsZero())
}
