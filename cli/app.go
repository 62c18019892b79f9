// Package cli wires the CollegeOps terminal client together and maps
// screens onto commands. Every screen is addressed by its route path
// and resolved through the route guard before anything renders, so an
// unauthenticated or wrong-role invocation lands on the same screen a
// redirect would have produced.
package cli

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/collegeops/collegeops-cli/api"
	"github.com/collegeops/collegeops-cli/internal/config"
	"github.com/collegeops/collegeops-cli/session"
	"github.com/collegeops/collegeops-cli/session/filestore"
)

// App holds the explicitly constructed session context and its
// collaborators. There is no package-level state; tests build their
// own App around fakes.
type App struct {
	cfg      config.Config
	storage  session.Storage
	client   *api.Client
	store    *session.Store
	validate *validator.Validate
	out      io.Writer
}

// NewApp builds the production wiring: file-backed durable storage
// under the configured state dir, an API client reading its bearer
// credential from that storage, and the session store on top of both.
func NewApp(cfg config.Config, out io.Writer) (*App, error) {
	storage := filestore.New(cfg.GetStateDir())

	var store *session.Store
	client := api.NewClient(cfg.GetAPIBaseURL(),
		api.WithCredentialSource(api.CredentialSourceFunc(func() (string, bool) {
			credential, err := storage.Get(session.KeyToken)
			return credential, err == nil && credential != ""
		})),
		api.WithUnauthorizedHook(func() {
			// Under the default policy an expired credential is only
			// detected, never acted on; the session stays in place.
			if cfg.GetUnauthorizedPolicy() == config.UnauthorizedLogout && store != nil {
				store.Logout()
			}
		}),
	)

	store, err := session.NewStore(storage, client)
	if err != nil {
		return nil, errors.Wrap(err, "[NewApp] build session store")
	}

	return &App{
		cfg:      cfg,
		storage:  storage,
		client:   client,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		out:      out,
	}, nil
}

// Bootstrap rehydrates the session from durable storage. It runs once
// before any command and completes before any protected screen may
// render.
func (a *App) Bootstrap() {
	a.store.Bootstrap()
}
