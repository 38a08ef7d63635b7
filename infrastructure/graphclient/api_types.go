package graphclient

// JSON response structures for the document-graph API.

type userJSON struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

type identitySetJSON struct {
	User userJSON `json:"user"`
}

type driveItemJSON struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	WebURL               string           `json:"webUrl"`
	Size                 int64            `json:"size"`
	LastModifiedDateTime string           `json:"lastModifiedDateTime"`
	LastModifiedBy       *identitySetJSON `json:"lastModifiedBy"`
	Folder               *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder"`
	File *struct {
		MimeType string `json:"mimeType"`
	} `json:"file"`
	Deleted *struct {
		State string `json:"state"`
	} `json:"deleted"`
	ParentReference *struct {
		DriveID string `json:"driveId"`
		ID      string `json:"id"`
	} `json:"parentReference"`
	// Shared listings wrap the real item in remoteItem.
	RemoteItem *driveItemJSON `json:"remoteItem"`
	ListItem   *struct {
		Fields map[string]any `json:"fields"`
	} `json:"listItem"`
}

type itemListJSON struct {
	Value     []driveItemJSON `json:"value"`
	NextLink  string          `json:"@odata.nextLink"`
	DeltaLink string          `json:"@odata.deltaLink"`
}

type siteJSON struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type driveJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type listItemRowJSON struct {
	Fields map[string]any `json:"fields"`
}

type listItemListJSON struct {
	Value    []listItemRowJSON `json:"value"`
	NextLink string            `json:"@odata.nextLink"`
}

type sensitivityLabelJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Tooltip     string `json:"tooltip"`
}

type sensitivityLabelListJSON struct {
	Value []sensitivityLabelJSON `json:"value"`
}

type retentionLabelJSON struct {
	Name              string `json:"name"`
	RetentionSettings *struct {
		RetentionPeriodDays int `json:"retentionPeriodDays"`
	} `json:"retentionSettings"`
	IsLabelAppliedAsDefault       bool             `json:"isLabelAppliedAsDefault"`
	LabelAppliedDateTime          string           `json:"labelAppliedDateTime"`
	LabelAppliedBy                *identitySetJSON `json:"labelAppliedBy"`
	BehaviorDuringRetentionPeriod string           `json:"behaviorDuringRetentionPeriod"`
}

type accessPolicyJSON struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	State       string `json:"state"`
}

type accessPolicyListJSON struct {
	Value []accessPolicyJSON `json:"value"`
}

type barrierPolicyJSON struct {
	DisplayName string `json:"displayName"`
	Segment     string `json:"segment"`
}

type barrierPolicyListJSON struct {
	Value []barrierPolicyJSON `json:"value"`
}

type activityJSON struct {
	Times struct {
		RecordedDateTime string `json:"recordedDateTime"`
	} `json:"times"`
	Actor  identitySetJSON `json:"actor"`
	Action struct {
		Access  *struct{} `json:"access"`
		Edit    *struct{} `json:"edit"`
		CheckIn *struct{} `json:"checkin"`
		Version *struct {
			NewVersion string `json:"newVersion"`
		} `json:"version"`
	} `json:"action"`
}

type activityListJSON struct {
	Value []activityJSON `json:"value"`
}

type versionJSON struct {
	ID                   string           `json:"id"`
	Size                 int64            `json:"size"`
	LastModifiedDateTime string           `json:"lastModifiedDateTime"`
	LastModifiedBy       *identitySetJSON `json:"lastModifiedBy"`
}

type versionListJSON struct {
	Value []versionJSON `json:"value"`
}
