package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arlett/prodboard/internal/domain/project"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
	pageSize       = 100

	// Notion's public API allows an average of 3 requests per second.
	requestsPerSecond = 3
)

// Property names in the mirrored Notion database.
const (
	propName          = "Name"
	propTypes         = "Types"
	propDesigners     = "Designers"
	propEditors       = "Editors"
	propNotifyStatus  = "Notification Status"
	propState         = "State"
	propWorkPeriod    = "Work Period"
	propReferenceDate = "Reference Date"
	propNotes         = "Notes"
	propUnitName      = "Unit Name"
	propSizeSpec      = "Size Spec"
	propColorDraft    = "Color Draft"
	propFilePath      = "File Path"
)

// Config carries the client settings. BaseURL is only overridden in
// tests.
type Config struct {
	APIKey     string
	DatabaseID string
	BaseURL    string
}

// Client talks to the Notion API for one database.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	databaseID string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a rate-limited Notion client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:     logger,
	}
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type page struct {
	ID             string              `json:"id"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Properties     map[string]property `json:"properties"`
}

type property struct {
	Title       []richText `json:"title"`
	RichText    []richText `json:"rich_text"`
	MultiSelect []option   `json:"multi_select"`
	Select      *option    `json:"select"`
	Status      *option    `json:"status"`
	Date        *dateValue `json:"date"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type option struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FetchProjects pages through the whole database and maps every row
// to a project record.
func (c *Client) FetchProjects(ctx context.Context) ([]project.Project, error) {
	var out []project.Project

	cursor := ""
	for {
		resp, err := c.queryPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		for _, pg := range resp.Results {
			out = append(out, pg.toProject())
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	c.logger.Info("fetched projects from notion", "count", len(out))
	return out, nil
}

// MarkClosed flips the page's State select to the closed state.
func (c *Client) MarkClosed(ctx context.Context, pageID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"properties": map[string]any{
			propState: map[string]any{
				"select": map[string]any{"name": string(project.StateClosed)},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding close payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building close request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("updating page %s: %w", pageID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("updating page %s: status %d", pageID, resp.StatusCode)
	}
	return nil
}

func (c *Client) queryPage(ctx context.Context, cursor string) (*queryResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(queryRequest{PageSize: pageSize, StartCursor: cursor})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	url := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, c.databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building query request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying database: status %d", resp.StatusCode)
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}
	return &qr, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
}

func (p *page) toProject() project.Project {
	props := p.Properties

	proj := project.Project{
		ID:                 p.ID,
		Name:               plainText(props[propName].Title),
		Types:              optionNames(props[propTypes].MultiSelect),
		Designers:          optionNames(props[propDesigners].MultiSelect),
		Editors:            optionNames(props[propEditors].MultiSelect),
		NotificationStatus: statusName(props[propNotifyStatus].Status),
		State:              lifecycleState(props[propState].Select),
		ReferenceDate:      dateStart(props[propReferenceDate].Date),
		Notes:              plainText(props[propNotes].RichText),
		UnitName:           plainText(props[propUnitName].RichText),
		SizeSpec:           plainText(props[propSizeSpec].RichText),
		ColorDraftDate:     plainText(props[propColorDraft].RichText),
		FilePath:           plainText(props[propFilePath].RichText),
		LastUpdatedAt:      p.LastEditedTime,
	}
	if d := props[propWorkPeriod].Date; d != nil {
		proj.WorkPeriod = &project.DateRange{Start: d.Start, End: d.End}
	}
	return proj
}

func plainText(parts []richText) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return b.String()
}

func optionNames(opts []option) []string {
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		names = append(names, o.Name)
	}
	return names
}

func statusName(o *option) string {
	if o == nil || o.Name == "" {
		return "unknown"
	}
	return o.Name
}

func lifecycleState(o *option) project.LifecycleState {
	if o == nil {
		return project.StateInProgress
	}
	switch project.LifecycleState(o.Name) {
	case project.StateCompleted:
		return project.StateCompleted
	case project.StateClosed:
		return project.StateClosed
	default:
		return project.StateInProgress
	}
}

func dateStart(d *dateValue) string {
	if d == nil {
		return ""
	}
	return d.Start
}
