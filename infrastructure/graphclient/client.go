package graphclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"dochub/domain/contracts"
	"dochub/domain/drive"
	"dochub/infrastructure/config"
	"dochub/logging"
	"dochub/platform/metrics"
)

const (
	siteCacheKey         = "site"
	driveCacheKeyPrefix  = "drive:"
	labelJustification   = "Classification updated from Document Hub"
	defaultDeltaPageSize = 50
)

// Client talks to the remote document-graph API. It owns identifier caching,
// continuation-link following, and rate limiting; it performs no retries.
type Client struct {
	baseURL    string
	token      string
	sitePath   string
	httpClient *http.Client
	limiter    *rate.Limiter
	idCache    *cache.Cache
	group      singleflight.Group
	metrics    *metrics.GatewayMetrics
	logger     *logging.Logger
}

// Compile-time contract check.
var _ contracts.DriveGateway = (*Client)(nil)

// NewClient builds a gateway client from configuration.
func NewClient(cfg *config.GraphConfig, gatewayMetrics *metrics.GatewayMetrics, logger *logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.AccessToken,
		sitePath:   cfg.SitePath,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		idCache:    cache.New(cache.NoExpiration, cache.NoExpiration),
		metrics:    gatewayMetrics,
		logger:     logger.WithComponent("graph_client"),
	}
}

// do issues one rate-limited request and decodes the JSON response into out.
// Failures come back as classified gateway errors; a 404 overrides the
// caller's kind with NotFound.
func (c *Client) do(ctx context.Context, op string, kind contracts.ErrorKind, method, requestURL string, body io.Reader, contentType string, out any) error {
	if c.metrics != nil {
		c.metrics.RecordCall(op)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return c.fail(op, kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return c.fail(op, kind, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Graph("request", "operation", op, "method", method, "url", requestURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(op, kind, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		respBody, _ := io.ReadAll(resp.Body)
		return c.fail(op, contracts.NotFound, fmt.Errorf("status 404: %s", string(respBody)))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return c.fail(op, kind, fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(op, kind, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(op string, kind contracts.ErrorKind, err error) error {
	if c.metrics != nil {
		c.metrics.RecordError(op, string(kind))
	}
	return contracts.NewGatewayError(op, kind, err)
}

// postJSON marshals body and issues a POST/PATCH with a JSON payload.
func (c *Client) doJSON(ctx context.Context, op string, kind contracts.ErrorKind, method, requestURL string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return c.fail(op, kind, fmt.Errorf("encode payload: %w", err))
	}
	return c.do(ctx, op, kind, method, requestURL, bytes.NewReader(data), "application/json", out)
}

// listPages follows @odata.nextLink until the listing is exhausted.
func (c *Client) listPages(ctx context.Context, op string, firstURL string) ([]drive.ItemRecord, error) {
	var records []drive.ItemRecord
	next := firstURL
	for next != "" {
		var page itemListJSON
		if err := c.do(ctx, op, contracts.ListingFailure, http.MethodGet, next, nil, "", &page); err != nil {
			return nil, err
		}
		records = append(records, toItemRecords(page.Value)...)
		next = page.NextLink
	}
	return records, nil
}

// ResolveSite resolves the configured site path to a site ID. The result is
// cached for the process lifetime; a failed resolution never populates the
// cache, so the next caller retries. Concurrent callers collapse to one call.
func (c *Client) ResolveSite(ctx context.Context) (string, error) {
	if cached, ok := c.idCache.Get(siteCacheKey); ok {
		return cached.(string), nil
	}

	result, err, _ := c.group.Do(siteCacheKey, func() (any, error) {
		if cached, ok := c.idCache.Get(siteCacheKey); ok {
			return cached.(string), nil
		}
		var site siteJSON
		requestURL := fmt.Sprintf("%s/sites/%s", c.baseURL, c.sitePath)
		if err := c.do(ctx, "resolve_site", contracts.ResolutionFailure, http.MethodGet, requestURL, nil, "", &site); err != nil {
			return "", err
		}
		if site.ID == "" {
			return "", c.fail("resolve_site", contracts.ResolutionFailure, fmt.Errorf("empty site id"))
		}
		c.idCache.Set(siteCacheKey, site.ID, cache.NoExpiration)
		return site.ID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// ResolveDrive resolves the default document drive for a site, cached per
// site ID with the same stampede-avoidance semantics as ResolveSite.
func (c *Client) ResolveDrive(ctx context.Context, siteID string) (string, error) {
	key := driveCacheKeyPrefix + siteID
	if cached, ok := c.idCache.Get(key); ok {
		return cached.(string), nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		if cached, ok := c.idCache.Get(key); ok {
			return cached.(string), nil
		}
		var d driveJSON
		requestURL := fmt.Sprintf("%s/sites/%s/drive", c.baseURL, url.PathEscape(siteID))
		if err := c.do(ctx, "resolve_drive", contracts.ResolutionFailure, http.MethodGet, requestURL, nil, "", &d); err != nil {
			return "", err
		}
		if d.ID == "" {
			return "", c.fail("resolve_drive", contracts.ResolutionFailure, fmt.Errorf("empty drive id"))
		}
		c.idCache.Set(key, d.ID, cache.NoExpiration)
		return d.ID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// ListChildren lists a folder's children, following continuations.
func (c *Client) ListChildren(ctx context.Context, driveID, folderID string) ([]drive.ItemRecord, error) {
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/children", c.baseURL, url.PathEscape(driveID), url.PathEscape(folderID))
	return c.listPages(ctx, "list_children", requestURL)
}

// ListChildrenByPath lists children of a path-addressed folder under the
// drive root. Each path segment is escaped individually.
func (c *Client) ListChildrenByPath(ctx context.Context, driveID, folderPath string) ([]drive.ItemRecord, error) {
	trimmed := strings.Trim(folderPath, "/")
	if trimmed == "" {
		requestURL := fmt.Sprintf("%s/drives/%s/root/children", c.baseURL, url.PathEscape(driveID))
		return c.listPages(ctx, "list_children_by_path", requestURL)
	}
	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	requestURL := fmt.Sprintf("%s/drives/%s/root:/%s:/children", c.baseURL, url.PathEscape(driveID), strings.Join(segments, "/"))
	return c.listPages(ctx, "list_children_by_path", requestURL)
}

// ListFolders lists only the folders under the drive root.
func (c *Client) ListFolders(ctx context.Context, driveID string) ([]drive.ItemRecord, error) {
	requestURL := fmt.Sprintf("%s/drives/%s/root/children", c.baseURL, url.PathEscape(driveID))
	records, err := c.listPages(ctx, "list_folders", requestURL)
	if err != nil {
		return nil, err
	}
	folders := make([]drive.ItemRecord, 0, len(records))
	for _, record := range records {
		if record.IsFolder {
			folders = append(folders, record)
		}
	}
	return folders, nil
}

// DeltaPage fetches exactly one page of the drive's delta listing. The
// cursor is either a continuation link from a prior page or empty for a
// fresh enumeration. Delta listings feed incremental scroll, so pages are
// never auto-followed here.
func (c *Client) DeltaPage(ctx context.Context, driveID, cursor string, pageSize int) (drive.DeltaPage, error) {
	if pageSize <= 0 {
		pageSize = defaultDeltaPageSize
	}
	requestURL := cursor
	if requestURL == "" {
		requestURL = fmt.Sprintf("%s/drives/%s/root/delta?$top=%d", c.baseURL, url.PathEscape(driveID), pageSize)
	}

	var page itemListJSON
	if err := c.do(ctx, "delta_page", contracts.ListingFailure, http.MethodGet, requestURL, nil, "", &page); err != nil {
		return drive.DeltaPage{}, err
	}
	// A deltaLink marks the end of this enumeration round; the incremental
	// scroll view treats that as exhaustion.
	return drive.DeltaPage{
		Items:      toItemRecords(page.Value),
		NextCursor: page.NextLink,
	}, nil
}

// Search searches the user's drive, following continuations.
func (c *Client) Search(ctx context.Context, query string) ([]drive.ItemRecord, error) {
	escaped := url.PathEscape(strings.ReplaceAll(query, "'", "''"))
	requestURL := fmt.Sprintf("%s/me/drive/root/search(q='%s')", c.baseURL, escaped)
	return c.listPages(ctx, "search", requestURL)
}

// Recent lists the user's recently used items.
func (c *Client) Recent(ctx context.Context) ([]drive.ItemRecord, error) {
	return c.listPages(ctx, "recent", c.baseURL+"/me/drive/recent")
}

// SharedWithMe lists items shared with the signed-in user. The mapper
// unwraps remoteItem so callers see the items' home-drive identifiers.
func (c *Client) SharedWithMe(ctx context.Context) ([]drive.ItemRecord, error) {
	return c.listPages(ctx, "shared_with_me", c.baseURL+"/me/drive/sharedWithMe")
}

// GetItem fetches bare item metadata.
func (c *Client) GetItem(ctx context.Context, driveID, itemID string) (drive.ItemRecord, error) {
	var raw driveItemJSON
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	if err := c.do(ctx, "get_item", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &raw); err != nil {
		return drive.ItemRecord{}, err
	}
	return toItemRecord(raw), nil
}

// GetItemWithFields fetches item metadata plus its list-item fields in one
// expanded call.
func (c *Client) GetItemWithFields(ctx context.Context, driveID, itemID string) (drive.ItemDetail, error) {
	var raw driveItemJSON
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s?$expand=listItem($expand=fields)",
		c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	if err := c.do(ctx, "get_item_with_fields", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &raw); err != nil {
		return drive.ItemDetail{}, err
	}
	return toItemDetail(raw), nil
}

// GetMetadataFields fetches the item's list-item field values.
func (c *Client) GetMetadataFields(ctx context.Context, driveID, itemID string) (map[string]string, error) {
	var raw map[string]any
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/listItem/fields", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	if err := c.do(ctx, "get_metadata_fields", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &raw); err != nil {
		return nil, err
	}
	return stringifyFields(raw), nil
}

// PatchMetadataFields patches the given list-item field values.
func (c *Client) PatchMetadataFields(ctx context.Context, driveID, itemID string, fields map[string]string) error {
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/listItem/fields", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	return c.doJSON(ctx, "patch_metadata_fields", contracts.MutationFailure, http.MethodPatch, requestURL, fields, nil)
}

// ListProjects fetches the tenant project reference list from the site's
// Projects list. Deliberately uncached; the list is small and callers want
// fresh values on every classification load.
func (c *Client) ListProjects(ctx context.Context) ([]string, error) {
	siteID, err := c.ResolveSite(ctx)
	if err != nil {
		return nil, err
	}

	var projects []string
	next := fmt.Sprintf("%s/sites/%s/lists/Projects/items?$expand=fields", c.baseURL, url.PathEscape(siteID))
	for next != "" {
		var page listItemListJSON
		if err := c.do(ctx, "list_projects", contracts.FacetFailure, http.MethodGet, next, nil, "", &page); err != nil {
			return nil, err
		}
		for _, row := range page.Value {
			if title, ok := row.Fields["Title"].(string); ok && title != "" {
				projects = append(projects, title)
			}
		}
		next = page.NextLink
	}
	return projects, nil
}

// GetSensitivityLabel fetches the item's assigned sensitivity label.
func (c *Client) GetSensitivityLabel(ctx context.Context, driveID, itemID string) (drive.SensitivityLabel, error) {
	var raw sensitivityLabelJSON
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/extractSensitivityLabels", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	var envelope struct {
		Labels []sensitivityLabelJSON `json:"labels"`
	}
	if err := c.doJSON(ctx, "get_sensitivity_label", contracts.FacetFailure, http.MethodPost, requestURL, struct{}{}, &envelope); err != nil {
		return drive.SensitivityLabel{}, err
	}
	if len(envelope.Labels) > 0 {
		raw = envelope.Labels[0]
	}
	return toSensitivityLabel(raw), nil
}

// ListSensitivityLabels fetches the tenant sensitivity label catalog.
func (c *Client) ListSensitivityLabels(ctx context.Context) ([]drive.SensitivityLabel, error) {
	var page sensitivityLabelListJSON
	requestURL := c.baseURL + "/me/security/informationProtection/sensitivityLabels"
	if err := c.do(ctx, "list_sensitivity_labels", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &page); err != nil {
		return nil, err
	}
	labels := make([]drive.SensitivityLabel, 0, len(page.Value))
	for _, raw := range page.Value {
		labels = append(labels, toSensitivityLabel(raw))
	}
	return labels, nil
}

// AssignSensitivityLabel assigns a sensitivity label to an item. An empty
// justification falls back to the default assignment note.
func (c *Client) AssignSensitivityLabel(ctx context.Context, driveID, itemID, labelID, justification string) error {
	if justification == "" {
		justification = labelJustification
	}
	payload := map[string]string{
		"sensitivityLabelId": labelID,
		"justificationText":  justification,
	}
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/assignSensitivityLabel", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	return c.doJSON(ctx, "assign_sensitivity_label", contracts.MutationFailure, http.MethodPost, requestURL, payload, nil)
}

// GetRetentionLabel fetches the item's retention label.
func (c *Client) GetRetentionLabel(ctx context.Context, driveID, itemID string) (drive.RetentionLabel, error) {
	var raw retentionLabelJSON
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/retentionLabel", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	if err := c.do(ctx, "get_retention_label", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &raw); err != nil {
		return drive.RetentionLabel{}, err
	}
	return toRetentionLabel(raw), nil
}

// ListConditionalAccessPolicies fetches the tenant's conditional access
// policies.
func (c *Client) ListConditionalAccessPolicies(ctx context.Context) ([]drive.AccessPolicy, error) {
	var page accessPolicyListJSON
	requestURL := c.baseURL + "/identity/conditionalAccess/policies"
	if err := c.do(ctx, "list_conditional_access_policies", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &page); err != nil {
		return nil, err
	}
	policies := make([]drive.AccessPolicy, 0, len(page.Value))
	for _, raw := range page.Value {
		policies = append(policies, toAccessPolicy(raw))
	}
	return policies, nil
}

// ListInformationBarriers fetches the tenant's information barrier segment
// names.
func (c *Client) ListInformationBarriers(ctx context.Context) ([]string, error) {
	var page barrierPolicyListJSON
	requestURL := c.baseURL + "/policies/informationBarrierPolicies"
	if err := c.do(ctx, "list_information_barriers", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &page); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(page.Value))
	for _, raw := range page.Value {
		name := raw.DisplayName
		if name == "" {
			name = raw.Segment
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// ItemActivities fetches the item's most recent activity records.
func (c *Client) ItemActivities(ctx context.Context, driveID, itemID string, top int) ([]drive.ActivityRecord, error) {
	var page activityListJSON
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/activities?$top=%d", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID), top)
	if err := c.do(ctx, "item_activities", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &page); err != nil {
		return nil, err
	}
	records := make([]drive.ActivityRecord, 0, len(page.Value))
	for _, raw := range page.Value {
		records = append(records, toActivityRecord(raw))
	}
	return records, nil
}

// ItemVersions fetches the item's most recent versions.
func (c *Client) ItemVersions(ctx context.Context, driveID, itemID string, top int) ([]drive.VersionRecord, error) {
	var page versionListJSON
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/versions?$top=%d", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID), top)
	if err := c.do(ctx, "item_versions", contracts.FacetFailure, http.MethodGet, requestURL, nil, "", &page); err != nil {
		return nil, err
	}
	records := make([]drive.VersionRecord, 0, len(page.Value))
	for _, raw := range page.Value {
		records = append(records, toVersionRecord(raw))
	}
	return records, nil
}

// RestoreVersion restores the item to the given version.
func (c *Client) RestoreVersion(ctx context.Context, driveID, itemID, versionID string) error {
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/versions/%s/restoreVersion",
		c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID), url.PathEscape(versionID))
	return c.do(ctx, "restore_version", contracts.MutationFailure, http.MethodPost, requestURL, nil, "", nil)
}

// UploadFile uploads content to the signed-in user's personal root with
// rename-on-conflict.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader) (drive.ItemRecord, error) {
	var raw driveItemJSON
	requestURL := fmt.Sprintf("%s/me/drive/root:/%s:/content?@microsoft.graph.conflictBehavior=rename",
		c.baseURL, url.PathEscape(name))
	if err := c.do(ctx, "upload_file", contracts.MutationFailure, http.MethodPut, requestURL, content, "application/octet-stream", &raw); err != nil {
		return drive.ItemRecord{}, err
	}
	return toItemRecord(raw), nil
}

// CopyToPersonalRoot copies an item into the user's personal root,
// preserving its name.
func (c *Client) CopyToPersonalRoot(ctx context.Context, driveID, itemID, name string) error {
	payload := map[string]any{
		"parentReference": map[string]string{"id": "root"},
		"name":            name,
	}
	requestURL := fmt.Sprintf("%s/drives/%s/items/%s/copy", c.baseURL, url.PathEscape(driveID), url.PathEscape(itemID))
	return c.doJSON(ctx, "copy_to_personal_root", contracts.MutationFailure, http.MethodPost, requestURL, payload, nil)
}

// Me fetches the signed-in user's profile. Used as a startup connectivity
// probe.
func (c *Client) Me(ctx context.Context) (drive.User, error) {
	var raw userJSON
	if err := c.do(ctx, "me", contracts.ResolutionFailure, http.MethodGet, c.baseURL+"/me", nil, "", &raw); err != nil {
		return drive.User{}, err
	}
	return toUser(raw), nil
}
