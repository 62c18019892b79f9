package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/collegeops/collegeops-cli/api"
	"github.com/collegeops/collegeops-cli/internal/config"
	"github.com/collegeops/collegeops-cli/session"
	"github.com/collegeops/collegeops-cli/session/repofakes"
	"github.com/collegeops/collegeops-cli/users"
)

// newBackend fakes the remote API with empty listings and a scripted
// login identity.
func newBackend(t *testing.T, loginUser users.User) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"user": loginUser, "token": "t1"},
		})
	})
	mux.HandleFunc("GET /notes", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"notes":[]}}`))
	})
	mux.HandleFunc("GET /assignments", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"assignments":[]}}`))
	})
	mux.HandleFunc("GET /announcements", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"announcements":[]}}`))
	})
	mux.HandleFunc("GET /admin/subjects", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"subjects":[]}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestApp(t *testing.T, backendURL string) (*App, *repofakes.FakeStorage, *bytes.Buffer) {
	t.Helper()

	storage := repofakes.NewFakeStorage()
	client := api.NewClient(backendURL,
		api.WithCredentialSource(api.CredentialSourceFunc(func() (string, bool) {
			credential, err := storage.Get(session.KeyToken)
			return credential, err == nil && credential != ""
		})),
	)
	store, err := session.NewStore(storage, client)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &App{
		cfg:      config.New(),
		storage:  storage,
		client:   client,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		out:      out,
	}, storage, out
}

func seedStudent(t *testing.T, storage session.Storage, store *session.Store) {
	t.Helper()

	serialized, err := json.Marshal(users.User{ID: "u1", Name: "Asha", Role: users.RoleStudent})
	require.NoError(t, err)
	require.NoError(t, storage.Set(session.KeyToken, "t1"))
	require.NoError(t, storage.Set(session.KeyUser, string(serialized)))
	store.Bootstrap()
}

func TestNavigate_Unauthenticated(t *testing.T) {
	backend := newBackend(t, users.User{})
	app, _, out := newTestApp(t, backend.URL)
	app.Bootstrap()

	require.NoError(t, app.Navigate(context.Background(), "/student/notes", screenOptions{}))

	// No protected content, only the redirect trail and the login hint.
	require.Contains(t, out.String(), "/student/notes -> /login")
	require.Contains(t, out.String(), "not logged in")
	require.NotContains(t, out.String(), "No notes found")
}

func TestNavigate_RootDispatch(t *testing.T) {
	backend := newBackend(t, users.User{})
	app, storage, out := newTestApp(t, backend.URL)
	seedStudent(t, storage, app.store)

	require.NoError(t, app.Navigate(context.Background(), "/", screenOptions{}))

	require.Contains(t, out.String(), "/ -> /student")
	require.Contains(t, out.String(), "Student Dashboard")
}

func TestRequireScreen_RoleMismatch(t *testing.T) {
	backend := newBackend(t, users.User{})
	app, storage, out := newTestApp(t, backend.URL)
	seedStudent(t, storage, app.store)

	allowed, err := app.requireScreen(context.Background(), "/admin/notes")
	require.NoError(t, err)
	require.False(t, allowed)
	require.Contains(t, out.String(), "/admin/notes -> /student")
	require.Contains(t, out.String(), "Student Dashboard")
}

// newWiredApp builds the app through NewApp, file storage and
// unauthorized hook included, against a scripted backend.
func newWiredApp(t *testing.T, backendURL string, policy config.UnauthorizedPolicy) *App {
	t.Helper()

	t.Setenv("COLLEGEOPS_API_URL", backendURL)
	t.Setenv("COLLEGEOPS_STATE_DIR", t.TempDir())
	t.Setenv("COLLEGEOPS_401_POLICY", string(policy))

	app, err := NewApp(config.New(), &bytes.Buffer{})
	require.NoError(t, err)
	return app
}

func TestUnauthorizedPolicy(t *testing.T) {
	t.Run("logout policy clears the session on an expired credential", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /notes", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"jwt expired"}`))
		})
		backend := httptest.NewServer(mux)
		t.Cleanup(backend.Close)

		app := newWiredApp(t, backend.URL, config.UnauthorizedLogout)
		seedStudent(t, app.storage, app.store)
		require.True(t, app.store.IsAuthenticated())

		require.Error(t, app.Navigate(context.Background(), "/student/notes", screenOptions{}))

		require.False(t, app.store.IsAuthenticated())
		_, err := app.storage.Get(session.KeyToken)
		require.Error(t, err)
		_, err = app.storage.Get(session.KeyUser)
		require.Error(t, err)
	})

	t.Run("logout policy leaves the session alone on rejected login credentials", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
		})
		backend := httptest.NewServer(mux)
		t.Cleanup(backend.Close)

		app := newWiredApp(t, backend.URL, config.UnauthorizedLogout)
		seedStudent(t, app.storage, app.store)

		result := app.store.Login(context.Background(), "asha@college.edu", "wrong")
		require.False(t, result.Success)
		require.Equal(t, "Invalid credentials", result.Error)

		require.True(t, app.store.IsAuthenticated())
		token, err := app.storage.Get(session.KeyToken)
		require.NoError(t, err)
		require.Equal(t, "t1", token)
		_, err = app.storage.Get(session.KeyUser)
		require.NoError(t, err)
	})

	t.Run("default policy only observes the expired credential", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /notes", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"jwt expired"}`))
		})
		backend := httptest.NewServer(mux)
		t.Cleanup(backend.Close)

		app := newWiredApp(t, backend.URL, config.UnauthorizedLog)
		seedStudent(t, app.storage, app.store)

		require.Error(t, app.Navigate(context.Background(), "/student/notes", screenOptions{}))

		require.True(t, app.store.IsAuthenticated())
		token, err := app.storage.Get(session.KeyToken)
		require.NoError(t, err)
		require.Equal(t, "t1", token)
	})
}

func TestLoginCommand_FullFlow(t *testing.T) {
	backend := newBackend(t, users.User{ID: "u2", Name: "Dean", Email: "a@b.com", Role: users.RoleAdmin})
	app, storage, out := newTestApp(t, backend.URL)

	cmd := NewRootCmd(app)
	cmd.SetArgs([]string{"login", "--email", "a@b.com", "--password", "secret1"})
	require.NoError(t, cmd.Execute())

	require.Contains(t, out.String(), "Logged in as Dean")
	require.Contains(t, out.String(), "Admin Dashboard")

	storedToken, err := storage.Get(session.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "t1", storedToken)
}

func TestLoginCommand_Validation(t *testing.T) {
	backend := newBackend(t, users.User{})
	app, storage, out := newTestApp(t, backend.URL)

	cmd := NewRootCmd(app)
	cmd.SetArgs([]string{"login", "--password", "secret1"})
	require.NoError(t, cmd.Execute())

	require.Contains(t, out.String(), "Please fill in all required fields")
	require.Zero(t, storage.Len(), "validation failures never reach the network or storage")
}

func TestValidationMessage(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	t.Run("missing required fields", func(t *testing.T) {
		err := validate.Struct(users.Credentials{Password: "pw"})
		require.Equal(t, "Please fill in all required fields", validationMessage(err))
	})

	t.Run("malformed email", func(t *testing.T) {
		err := validate.Struct(users.Credentials{Email: "nope", Password: "pw"})
		require.Equal(t, "Please enter a valid email address", validationMessage(err))
	})

	t.Run("short password", func(t *testing.T) {
		err := validate.Struct(users.Registration{
			Name: "Asha", Email: "a@b.com", Password: "abc", Role: users.RoleStudent,
			RollNumber: "42", Department: "CS",
		})
		require.Equal(t, "Password must be at least 6 characters", validationMessage(err))
	})

	t.Run("student registration requires profile fields", func(t *testing.T) {
		err := validate.Struct(users.Registration{
			Name: "Asha", Email: "a@b.com", Password: "secret1", Role: users.RoleStudent,
		})
		require.Equal(t, "Please fill in all required fields", validationMessage(err))
	})

	t.Run("admin registration does not", func(t *testing.T) {
		err := validate.Struct(users.Registration{
			Name: "Dean", Email: "d@b.com", Password: "secret1", Role: users.RoleAdmin,
		})
		require.NoError(t, err)
	})
}
