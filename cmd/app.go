package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/choretracker-go/internal/action"
	"github.com/nibzard/choretracker-go/internal/api"
	"github.com/nibzard/choretracker-go/internal/command"
	"github.com/nibzard/choretracker-go/internal/config"
	"github.com/nibzard/choretracker-go/internal/dummy"
	"github.com/nibzard/choretracker-go/internal/logging"
	"github.com/nibzard/choretracker-go/internal/notification"
	"github.com/nibzard/choretracker-go/internal/state"
	"github.com/nibzard/choretracker-go/internal/store"
)

// app wires the client, store and commands for one CLI invocation.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	client  *api.Client
	store   *store.Store[state.State]
	cmds    *command.Commands
	history *command.History
}

// newApp builds the application for cfg. Notifications are printed to out
// as they are shown.
func newApp(cfg *config.Config, out, logOut io.Writer) (*app, error) {
	logger := logging.FromConfig(logOut, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	var client *api.Client
	switch cfg.Backend {
	case config.BackendHTTP:
		client = api.NewClient(cfg.APIBase, api.NewHTTPExecutor(cfg.ServerURL, logger), api.WithLogger(logger))
	default:
		client = api.NewClient(cfg.APIBase, nil, api.WithLogger(logger))
		fixture, err := resolveFixture(cfg)
		if err != nil {
			return nil, err
		}
		_, err = dummy.Patch(client, dummy.Options{
			FixtureData: &fixture,
			Delay:       cfg.DummyDelay(),
			RejectDelay: cfg.DummyRejectDelay(),
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("starting dummy backend: %w", err)
		}
	}

	middleware := []store.Middleware[state.State]{printNotifications(out)}
	if cfg.LogActions {
		middleware = append(middleware, logging.ActionLogger(logger))
	}
	st := store.New(state.Root(state.New(time.Now().Unix())), store.WithMiddleware(middleware...))

	history := &command.History{}
	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		store:   st,
		history: history,
		cmds: &command.Commands{
			API:    client,
			Nav:    history,
			Expiry: cfg.NotificationExpiry(),
			Logger: logger,
		},
	}, nil
}

// resolveFixture loads the fixture file when one is configured, otherwise
// the named built-in fixture.
func resolveFixture(cfg *config.Config) (dummy.Fixture, error) {
	if cfg.FixtureFile != "" {
		return dummy.LoadFixtureFile(cfg.FixtureFile)
	}
	return dummy.LookupFixture(cfg.Fixture)
}

// printNotifications writes every shown notification to w.
func printNotifications(w io.Writer) store.Middleware[state.State] {
	return func(d store.Dispatcher[state.State], next store.DispatchFunc) store.DispatchFunc {
		return func(a action.Action) {
			next(a)
			if a.Type != action.ShowNotification {
				return
			}
			p, ok := a.Payload.(action.NotificationPayload)
			if !ok {
				return
			}
			prefix := "ok"
			if p.Notification.Level == notification.Error {
				prefix = "error"
			}
			fmt.Fprintf(w, "[%s] %s\n", prefix, p.Notification.Message)
		}
	}
}

// printNavigation writes the final navigation target, if any.
func (a *app) printNavigation(w io.Writer) {
	if path := a.history.Current(); path != "" {
		fmt.Fprintf(w, "-> %s\n", path)
	}
}
