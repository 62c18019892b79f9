// Package api is the HTTP boundary to the remote CollegeOps backend.
// Every request and response follows the backend's envelope convention:
// success bodies wrap their payload in {"data": {...}}, failures carry
// {"message": "..."} at any non-2xx status.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/collegeops/collegeops-cli/content"
	"github.com/collegeops/collegeops-cli/users"
)

// Client talks to the CollegeOps REST API. It attaches the current
// bearer credential (if any) to every request and surfaces server
// failures as *Error values. It performs no retries and imposes no
// timeout of its own; callers control cancellation through ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option modifies a Client during construction.
type Option func(*Client, *transport)

// WithCredentialSource sets where the bearer credential is read from.
func WithCredentialSource(source CredentialSource) Option {
	return func(_ *Client, t *transport) {
		t.creds = source
	}
}

// WithUnauthorizedHook registers a callback invoked whenever the server
// answers 401. The hook runs after the diagnostic log line; the
// response still propagates to the caller unchanged.
func WithUnauthorizedHook(hook func()) Option {
	return func(_ *Client, t *transport) {
		t.onUnauthorized = hook
	}
}

func NewClient(baseURL string, options ...Option) *Client {
	t := &transport{creds: noCredentials{}}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Transport: t},
	}
	for _, opt := range options {
		opt(c, t)
	}
	return c
}

// AuthPayload is the success shape of both authentication endpoints.
type AuthPayload struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

// Login exchanges credentials for an identity and bearer token.
func (c *Client) Login(ctx context.Context, creds users.Credentials) (*AuthPayload, error) {
	var payload AuthPayload
	if err := c.do(withAuthAttempt(ctx), http.MethodPost, "/auth/login", nil, creds, &payload); err != nil {
		return nil, errors.Wrap(err, "[Client.Login] POST /auth/login")
	}
	return &payload, nil
}

// Register creates an account and logs it in, in one round trip.
func (c *Client) Register(ctx context.Context, registration users.Registration) (*AuthPayload, error) {
	var payload AuthPayload
	if err := c.do(withAuthAttempt(ctx), http.MethodPost, "/auth/register", nil, registration, &payload); err != nil {
		return nil, errors.Wrap(err, "[Client.Register] POST /auth/register")
	}
	return &payload, nil
}

// NotesFilter narrows the notes listing.
type NotesFilter struct {
	Subject string
	Search  string
}

func (c *Client) Notes(ctx context.Context, filter NotesFilter) ([]content.Note, error) {
	query := url.Values{}
	if filter.Subject != "" {
		query.Set("subject", filter.Subject)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	var payload struct {
		Notes []content.Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/notes", query, nil, &payload); err != nil {
		return nil, errors.Wrap(err, "[Client.Notes] GET /notes")
	}
	return payload.Notes, nil
}

// AssignmentsFilter narrows the assignments listing.
type AssignmentsFilter struct {
	Subject string
}

func (c *Client) Assignments(ctx context.Context, filter AssignmentsFilter) ([]content.Assignment, error) {
	query := url.Values{}
	if filter.Subject != "" {
		query.Set("subject", filter.Subject)
	}
	var payload struct {
		Assignments []content.Assignment `json:"assignments"`
	}
	if err := c.do(ctx, http.MethodGet, "/assignments", query, nil, &payload); err != nil {
		return nil, errors.Wrap(err, "[Client.Assignments] GET /assignments")
	}
	return payload.Assignments, nil
}

// AnnouncementsFilter narrows the announcements listing.
type AnnouncementsFilter struct {
	Priority content.PriorityType
}

func (c *Client) Announcements(ctx context.Context, filter AnnouncementsFilter) ([]content.Announcement, error) {
	query := url.Values{}
	if filter.Priority != "" {
		query.Set("priority", string(filter.Priority))
	}
	var payload struct {
		Announcements []content.Announcement `json:"announcements"`
	}
	if err := c.do(ctx, http.MethodGet, "/announcements", query, nil, &payload); err != nil {
		return nil, errors.Wrap(err, "[Client.Announcements] GET /announcements")
	}
	return payload.Announcements, nil
}

func (c *Client) Subjects(ctx context.Context) ([]content.Subject, error) {
	var payload struct {
		Subjects []content.Subject `json:"subjects"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/subjects", nil, nil, &payload); err != nil {
		return nil, errors.Wrap(err, "[Client.Subjects] GET /admin/subjects")
	}
	return payload.Subjects, nil
}

// CreateNote uploads a note. Admin only; the server enforces the role.
func (c *Client) CreateNote(ctx context.Context, note content.Note) error {
	if err := c.do(ctx, http.MethodPost, "/admin/notes", nil, note, nil); err != nil {
		return errors.Wrap(err, "[Client.CreateNote] POST /admin/notes")
	}
	return nil
}

func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/notes/"+url.PathEscape(noteID), nil, nil, nil); err != nil {
		return errors.Wrap(err, "[Client.DeleteNote] DELETE /admin/notes")
	}
	return nil
}

func (c *Client) CreateAssignment(ctx context.Context, assignment content.Assignment) error {
	if err := c.do(ctx, http.MethodPost, "/admin/assignments", nil, assignment, nil); err != nil {
		return errors.Wrap(err, "[Client.CreateAssignment] POST /admin/assignments")
	}
	return nil
}

func (c *Client) DeleteAssignment(ctx context.Context, assignmentID string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/assignments/"+url.PathEscape(assignmentID), nil, nil, nil); err != nil {
		return errors.Wrap(err, "[Client.DeleteAssignment] DELETE /admin/assignments")
	}
	return nil
}

func (c *Client) CreateAnnouncement(ctx context.Context, announcement content.Announcement) error {
	if err := c.do(ctx, http.MethodPost, "/admin/announcement", nil, announcement, nil); err != nil {
		return errors.Wrap(err, "[Client.CreateAnnouncement] POST /admin/announcement")
	}
	return nil
}

// envelope is the common response wrapper. Data is present on success,
// Message on failure; the backend never mixes the two.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] marshal request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return errors.Wrap(err, "[Client.do] build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Client.do] round trip")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "[Client.do] read response body")
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body on a failure status still yields the
		// generic message below, so the decode error is ignored.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(err, "[Client.do] decode data payload")
	}
	return nil
}
