package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"meetingsManagement/internal/auth"
	"meetingsManagement/models"
	"meetingsManagement/repository"
)

const (
	restPrefix = "/rest/v1/"
	// singleObject asks the REST layer for exactly one object instead of an array.
	singleObject = "application/vnd.pgrst.object+json"
)

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validTable(table string) bool {
	return tableRe.MatchString(table)
}

// APIError is a non-2xx answer of the hosted REST API.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend returned %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unwrap maps credential rejections to ErrUnauthorized.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Remote talks to the hosted backend's REST API. Requests carry the project
// anon key and, when present in ctx, the caller's access token so row level
// security applies to the caller.
type Remote struct {
	baseURL  string
	anonKey  string
	sessions *auth.Verifier
	client   *http.Client
}

// NewRemote creates a REST client for baseURL.
func NewRemote(baseURL, anonKey string, sessions *auth.Verifier, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Remote{
		baseURL:  strings.TrimRight(baseURL, "/"),
		anonKey:  anonKey,
		sessions: sessions,
		client:   client,
	}
}

func (r *Remote) CurrentSession(ctx context.Context) (*models.Session, error) {
	return r.sessions.CurrentSession(ctx)
}

func (r *Remote) ProfileRole(ctx context.Context, userID string) (string, error) {
	q := url.Values{}
	q.Set("select", "role")
	q.Set("id", "eq."+userID)
	var p models.Profile
	found, err := r.getSingle(ctx, "profiles", q, &p)
	if err != nil {
		return "", fmt.Errorf("get profile role: %w", err)
	}
	if !found {
		return "", nil
	}
	return p.Role, nil
}

func (r *Remote) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	q := url.Values{}
	q.Set("select", "id,title,location,starts_at,created_by")
	q.Set("id", "eq."+id)
	var m models.Meeting
	found, err := r.getSingle(ctx, "meetings", q, &m)
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &m, nil
}

func (r *Remote) ListMeetings(ctx context.Context, limit int, pageToken string) ([]models.Meeting, string, error) {
	after, err := repository.DecodeCursor(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{}
	q.Set("select", "id,title,location,starts_at,created_by")
	q.Set("order", "starts_at.asc,id.asc")
	q.Set("limit", strconv.Itoa(limit))
	if after != nil {
		q.Set("or", fmt.Sprintf("(starts_at.gt.%s,and(starts_at.eq.%s,id.gt.%s))", after.StartsAt, after.StartsAt, after.ID))
	}
	var list []models.Meeting
	if err := r.getList(ctx, "meetings", q, &list); err != nil {
		return nil, "", fmt.Errorf("list meetings: %w", err)
	}
	var next string
	if len(list) == limit {
		next = repository.CursorAfter(list[len(list)-1]).Encode()
	}
	return list, next, nil
}

func (r *Remote) ListEventVehicles(ctx context.Context, meetingID string) ([]models.EventVehicle, error) {
	q := url.Values{}
	q.Set("select", "id,meeting_id,label,plate,seats,driver")
	q.Set("meeting_id", "eq."+meetingID)
	q.Set("order", "label.asc,id.asc")
	var list []models.EventVehicle
	if err := r.getList(ctx, "event_vehicles", q, &list); err != nil {
		return nil, fmt.Errorf("list event vehicles: %w", err)
	}
	return list, nil
}

func (r *Remote) SampleRow(ctx context.Context, table string) (*Row, error) {
	if !validTable(table) {
		return nil, ErrInvalidTable
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("limit", "1")
	body, err := r.get(ctx, table, q, "application/json")
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", table, err)
	}
	row, err := decodeFirstObject(body)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", table, err)
	}
	return row, nil
}

func (r *Remote) getSingle(ctx context.Context, table string, q url.Values, out any) (bool, error) {
	body, err := r.get(ctx, table, q, singleObject)
	if err != nil {
		var apiErr *APIError
		// 406: the single-object request matched zero (or several) rows.
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotAcceptable || apiErr.Status == http.StatusNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", table, err)
	}
	return true, nil
}

func (r *Remote) getList(ctx context.Context, table string, q url.Values, out any) error {
	body, err := r.get(ctx, table, q, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", table, err)
	}
	return nil
}

func (r *Remote) get(ctx context.Context, table string, q url.Values, accept string) ([]byte, error) {
	u := r.baseURL + restPrefix + table + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	bearer := r.anonKey
	if tok, ok := auth.AccessTokenFromContext(ctx); ok {
		bearer = tok
	}
	req.Header.Set("apikey", r.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", accept)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}
	return body, nil
}

// decodeFirstObject decodes the first object of a JSON array, keeping the
// key order of the payload. An empty array yields a nil row.
func decodeFirstObject(body []byte) (*Row, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	if !dec.More() {
		return nil, nil
	}
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	row := &Row{Values: map[string]any{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		row.Columns = append(row.Columns, key)
		row.Values[key] = v
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
