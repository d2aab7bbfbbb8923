// Package gateway is the REST client for the CompanySphere backend.
//
// Every operation performs exactly one attempt: failures are surfaced
// immediately and retrying is the caller's decision (typically a
// user-triggered retry affordance).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/protocol"
)

// genericFailure is surfaced when the backend supplies no message.
const genericFailure = "request failed"

// Client talks to the CompanySphere backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	authToken string
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	AuthToken string
}

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		authToken: cfg.AuthToken,
	}
}

// SetAuthToken sets the bearer token for subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = token
}

// applyAuth adds the auth header to a request if a token is set.
func (c *Client) applyAuth(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

// call performs one JSON request and unwraps the response envelope.
func call[T any](ctx context.Context, c *Client, op, method, path string, body any) (T, error) {
	var zero T

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return zero, fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.applyAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env protocol.Envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := genericFailure
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return zero, &BackendError{Op: op, Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("%s: parse response: %w", op, decodeErr)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = genericFailure
		}
		return zero, &BackendError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	return env.Data, nil
}

// ListFolders returns the root-accessible folders with nested
// sub-folders and documents populated.
func (c *Client) ListFolders(ctx context.Context) ([]*models.Folder, error) {
	return call[[]*models.Folder](ctx, c, "list folders", "GET", "/api/dossiers", nil)
}

// GetFolder returns one folder's detail (children and documents) for
// on-demand expansion.
func (c *Client) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	folder, err := call[*models.Folder](ctx, c, "get folder", "GET", "/api/dossiers/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		if be, ok := AsBackend(err); ok && be.Status == http.StatusNotFound {
			return nil, &NotFoundError{Resource: "folder", ID: id}
		}
		return nil, err
	}
	return folder, nil
}

// ListFolderDocuments returns the documents directly under a folder.
func (c *Client) ListFolderDocuments(ctx context.Context, folderID int64) ([]models.Document, error) {
	path := "/api/dossiers/" + strconv.FormatInt(folderID, 10) + "/documents"
	return call[[]models.Document](ctx, c, "list folder documents", "GET", path, nil)
}

// ListDocuments returns the flat document list.
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	return call[[]models.Document](ctx, c, "list documents", "GET", "/api/documents", nil)
}

// DownloadDocument returns the raw binary payload of a document as an
// opaque byte stream, plus its size when the server reports one.
// The caller must close the reader.
func (c *Client) DownloadDocument(ctx context.Context, id int64) (io.ReadCloser, int64, error) {
	const op = "download document"

	url := c.baseURL + "/api/documents/" + strconv.FormatInt(id, 10) + "/download"
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: build request: %w", op, err)
	}
	c.applyAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, 0, &NotFoundError{Resource: "document", ID: id}
	}
	if resp.StatusCode != http.StatusOK {
		msg := genericFailure
		var env protocol.Envelope[json.RawMessage]
		if json.NewDecoder(resp.Body).Decode(&env) == nil && env.Message != "" {
			msg = env.Message
		}
		resp.Body.Close()
		return nil, 0, &BackendError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	var size int64 = -1
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			size = n
		}
	}

	return resp.Body, size, nil
}

// ListGroups returns all groups in their list projection.
func (c *Client) ListGroups(ctx context.Context) ([]models.GroupSummary, error) {
	dtos, err := call[[]protocol.GroupDTO](ctx, c, "list groups", "GET", "/api/groupes", nil)
	if err != nil {
		return nil, err
	}
	return protocol.GroupSummariesFromDTO(dtos), nil
}

// GetGroup returns one group's detail projection, members included.
func (c *Client) GetGroup(ctx context.Context, id int64) (*models.GroupDetail, error) {
	dto, err := call[protocol.GroupDTO](ctx, c, "get group", "GET", "/api/groupes/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		if be, ok := AsBackend(err); ok && be.Status == http.StatusNotFound {
			return nil, &NotFoundError{Resource: "group", ID: id}
		}
		return nil, err
	}
	detail := protocol.GroupDetailFromDTO(dto)
	return &detail, nil
}

// GroupsForEmployee returns the groups an employee belongs to.
func (c *Client) GroupsForEmployee(ctx context.Context, employeeID int64) ([]models.GroupSummary, error) {
	path := "/api/groupes/employe/" + strconv.FormatInt(employeeID, 10)
	dtos, err := call[[]protocol.GroupDTO](ctx, c, "list employee groups", "GET", path, nil)
	if err != nil {
		return nil, err
	}
	return protocol.GroupSummariesFromDTO(dtos), nil
}

// GroupsForManager returns the groups an employee is responsible for.
func (c *Client) GroupsForManager(ctx context.Context, employeeID int64) ([]models.GroupSummary, error) {
	path := "/api/groupes/responsable/" + strconv.FormatInt(employeeID, 10)
	dtos, err := call[[]protocol.GroupDTO](ctx, c, "list managed groups", "GET", path, nil)
	if err != nil {
		return nil, err
	}
	return protocol.GroupSummariesFromDTO(dtos), nil
}

// MyMeetings returns the meetings the authenticated employee is
// invited to.
func (c *Client) MyMeetings(ctx context.Context) ([]models.Meeting, error) {
	return call[[]models.Meeting](ctx, c, "list meetings", "GET", "/api/reunions/mes-reunions", nil)
}

// GetMeeting returns one meeting.
func (c *Client) GetMeeting(ctx context.Context, id int64) (*models.Meeting, error) {
	meeting, err := call[*models.Meeting](ctx, c, "get meeting", "GET", "/api/reunions/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		if be, ok := AsBackend(err); ok && be.Status == http.StatusNotFound {
			return nil, &NotFoundError{Resource: "meeting", ID: id}
		}
		return nil, err
	}
	return meeting, nil
}

// MeetingParticipants returns the invitees of a meeting with their
// response statuses.
func (c *Client) MeetingParticipants(ctx context.Context, meetingID int64) ([]models.Participant, error) {
	path := "/api/reunions/" + strconv.FormatInt(meetingID, 10) + "/participants"
	return call[[]models.Participant](ctx, c, "list participants", "GET", path, nil)
}

// RespondToMeeting submits the employee's response to an invitation.
func (c *Client) RespondToMeeting(ctx context.Context, meetingID, employeeID int64, status models.ResponseStatus) error {
	path := "/api/reunions/" + strconv.FormatInt(meetingID, 10) +
		"/participants/employe/" + strconv.FormatInt(employeeID, 10) + "/reponse"
	_, err := call[json.RawMessage](ctx, c, "respond to meeting", "PUT", path, protocol.RespondRequest{Response: status})
	return err
}
