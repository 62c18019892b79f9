package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collegeops/collegeops-cli/api"
	"github.com/collegeops/collegeops-cli/content"
	"github.com/collegeops/collegeops-cli/users"
)

// recordingHandler captures the last request and plays back a scripted
// response.
type recordingHandler struct {
	status int
	body   string

	lastMethod string
	lastPath   string
	lastQuery  map[string][]string
	lastHeader http.Header
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.lastMethod = r.Method
	h.lastPath = r.URL.Path
	h.lastQuery = r.URL.Query()
	h.lastHeader = r.Header.Clone()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(h.status)
	_, _ = w.Write([]byte(h.body))
}

func newTestClient(t *testing.T, handler *recordingHandler, options ...api.Option) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, options...)
}

func staticCredential(token string) api.Option {
	return api.WithCredentialSource(api.CredentialSourceFunc(func() (string, bool) {
		return token, token != ""
	}))
}

func TestClient_BearerInjection(t *testing.T) {
	t.Run("credential present attaches the header", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{"notes":[]}}`}
		client := newTestClient(t, handler, staticCredential("t1"))

		_, err := client.Notes(context.Background(), api.NotesFilter{})
		require.NoError(t, err)
		require.Equal(t, "Bearer t1", handler.lastHeader.Get("Authorization"))
	})

	t.Run("no credential means no header", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{"notes":[]}}`}
		client := newTestClient(t, handler, staticCredential(""))

		_, err := client.Notes(context.Background(), api.NotesFilter{})
		require.NoError(t, err)
		require.Empty(t, handler.lastHeader.Get("Authorization"))
	})

	t.Run("every request carries an id and json content type", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{"notes":[]}}`}
		client := newTestClient(t, handler)

		_, err := client.Notes(context.Background(), api.NotesFilter{})
		require.NoError(t, err)
		require.NotEmpty(t, handler.lastHeader.Get("X-Request-Id"))
		require.Equal(t, "application/json", handler.lastHeader.Get("Content-Type"))
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("success decodes the data envelope", func(t *testing.T) {
		handler := &recordingHandler{
			status: 200,
			body:   `{"data":{"user":{"id":"u1","name":"Dean","role":"admin"},"token":"t1"}}`,
		}
		client := newTestClient(t, handler)

		payload, err := client.Login(context.Background(), users.Credentials{Email: "a@b.com", Password: "pw"})
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, handler.lastMethod)
		require.Equal(t, "/auth/login", handler.lastPath)
		require.Equal(t, "t1", payload.Token)
		require.Equal(t, users.RoleAdmin, payload.User.Role)
	})

	t.Run("rejection surfaces the server message", func(t *testing.T) {
		handler := &recordingHandler{status: 401, body: `{"message":"Invalid credentials"}`}
		client := newTestClient(t, handler)

		_, err := client.Login(context.Background(), users.Credentials{Email: "a@b.com", Password: "short"})
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 401, apiErr.Status)
		require.Equal(t, "Invalid credentials", apiErr.Message)
	})

	t.Run("unparseable failure body leaves the message empty", func(t *testing.T) {
		handler := &recordingHandler{status: 500, body: `<html>gateway error</html>`}
		client := newTestClient(t, handler)

		_, err := client.Login(context.Background(), users.Credentials{Email: "a@b.com", Password: "pw"})
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 500, apiErr.Status)
		require.Empty(t, apiErr.Message)
		require.Contains(t, apiErr.Error(), "request failed")
	})
}

func TestClient_UnauthorizedHook(t *testing.T) {
	t.Run("401 invokes the hook and still propagates", func(t *testing.T) {
		handler := &recordingHandler{status: 401, body: `{"message":"jwt expired"}`}
		hookCalls := 0
		client := newTestClient(t, handler,
			staticCredential("stale"),
			api.WithUnauthorizedHook(func() { hookCalls++ }),
		)

		_, err := client.Notes(context.Background(), api.NotesFilter{})
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 401, apiErr.Status)
		require.Equal(t, 1, hookCalls)
	})

	t.Run("rejected login credentials never invoke the hook", func(t *testing.T) {
		handler := &recordingHandler{status: 401, body: `{"message":"Invalid credentials"}`}
		hookCalls := 0
		client := newTestClient(t, handler,
			staticCredential("t1"),
			api.WithUnauthorizedHook(func() { hookCalls++ }),
		)

		_, err := client.Login(context.Background(), users.Credentials{Email: "a@b.com", Password: "wrong"})
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 401, apiErr.Status)
		require.Zero(t, hookCalls)
	})

	t.Run("rejected registration never invokes the hook", func(t *testing.T) {
		handler := &recordingHandler{status: 401, body: `{"message":"Email already registered"}`}
		hookCalls := 0
		client := newTestClient(t, handler, api.WithUnauthorizedHook(func() { hookCalls++ }))

		_, err := client.Register(context.Background(), users.Registration{
			Name: "Asha", Email: "a@b.com", Password: "secret1", Role: users.RoleAdmin,
		})
		require.Error(t, err)
		require.Zero(t, hookCalls)
	})

	t.Run("non-401 failures never invoke the hook", func(t *testing.T) {
		handler := &recordingHandler{status: 500, body: `{"message":"boom"}`}
		hookCalls := 0
		client := newTestClient(t, handler, api.WithUnauthorizedHook(func() { hookCalls++ }))

		_, err := client.Notes(context.Background(), api.NotesFilter{})
		require.Error(t, err)
		require.Zero(t, hookCalls)
	})
}

func TestClient_Listings(t *testing.T) {
	t.Run("notes filters become query parameters", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{"notes":[{"id":"n1","title":"Graphs"}]}}`}
		client := newTestClient(t, handler)

		notes, err := client.Notes(context.Background(), api.NotesFilter{Subject: "s1", Search: "graph"})
		require.NoError(t, err)
		require.Equal(t, "/notes", handler.lastPath)
		require.Equal(t, []string{"s1"}, handler.lastQuery["subject"])
		require.Equal(t, []string{"graph"}, handler.lastQuery["search"])
		require.Len(t, notes, 1)
		require.Equal(t, "Graphs", notes[0].Title)
	})

	t.Run("assignments filter by subject", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{"assignments":[]}}`}
		client := newTestClient(t, handler)

		_, err := client.Assignments(context.Background(), api.AssignmentsFilter{Subject: "s2"})
		require.NoError(t, err)
		require.Equal(t, "/assignments", handler.lastPath)
		require.Equal(t, []string{"s2"}, handler.lastQuery["subject"])
	})

	t.Run("announcements filter by priority", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{"announcements":[{"id":"a1","priority":"high"}]}}`}
		client := newTestClient(t, handler)

		announcements, err := client.Announcements(context.Background(), api.AnnouncementsFilter{Priority: content.PriorityHigh})
		require.NoError(t, err)
		require.Equal(t, []string{"high"}, handler.lastQuery["priority"])
		require.Len(t, announcements, 1)
		require.Equal(t, content.PriorityHigh, announcements[0].Priority)
	})

	t.Run("subjects come from the admin listing", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{"subjects":[{"id":"s1","name":"Algorithms"}]}}`}
		client := newTestClient(t, handler)

		subjects, err := client.Subjects(context.Background())
		require.NoError(t, err)
		require.Equal(t, "/admin/subjects", handler.lastPath)
		require.Len(t, subjects, 1)
	})
}

func TestClient_AdminWrites(t *testing.T) {
	t.Run("create note posts to the admin collection", func(t *testing.T) {
		handler := &recordingHandler{status: 201, body: `{"data":{"note":{"id":"n9"}}}`}
		client := newTestClient(t, handler)

		err := client.CreateNote(context.Background(), content.Note{Title: "Trees", Subject: "s1", FileURL: "https://x/y.pdf"})
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, handler.lastMethod)
		require.Equal(t, "/admin/notes", handler.lastPath)
	})

	t.Run("delete note targets the note id", func(t *testing.T) {
		handler := &recordingHandler{status: 200, body: `{"data":{}}`}
		client := newTestClient(t, handler)

		require.NoError(t, client.DeleteNote(context.Background(), "n9"))
		require.Equal(t, http.MethodDelete, handler.lastMethod)
		require.Equal(t, "/admin/notes/n9", handler.lastPath)
	})

	t.Run("create announcement uses the singular admin path", func(t *testing.T) {
		handler := &recordingHandler{status: 201, body: `{"data":{}}`}
		client := newTestClient(t, handler)

		err := client.CreateAnnouncement(context.Background(), content.Announcement{
			Title:          "Holiday",
			Content:        "Campus closed Friday",
			Priority:       content.PriorityMedium,
			TargetAudience: content.TargetAudience{All: true},
		})
		require.NoError(t, err)
		require.Equal(t, "/admin/announcement", handler.lastPath)
	})
}
