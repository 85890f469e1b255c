// Package appstate is the application-state container: every persisted
// collection and setting, hydrated on Start and flushed on Stop. Handlers
// read and mutate through it and never touch the store directly.
package appstate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/incidents"
	"hotel-audit-pro/internal/library"
	"hotel-audit-pro/internal/persist"
	"hotel-audit-pro/internal/seed"
	"hotel-audit-pro/internal/session"
	"hotel-audit-pro/internal/store"
	"hotel-audit-pro/internal/users"
	"hotel-audit-pro/pkg/utils"
)

type Options struct {
	Persist persist.Options
	Logger  *slog.Logger
}

// hydrator is the type-erased view of a persist.State.
type hydrator interface {
	Name() string
	Hydrate(ctx context.Context) error
	Flush(ctx context.Context)
	Loaded() bool
	Saving() bool
}

type App struct {
	clock    clockwork.Clock
	log      *slog.Logger
	sessions session.Store
	reports  *incidents.Service

	// mu serializes read-modify-write cycles across all states.
	mu sync.Mutex

	audits      *persist.State[[]audits.Audit]
	incidents   *persist.State[[]incidents.Incident]
	users       *persist.State[[]users.User]
	sops        *persist.State[[]library.SOP]
	templates   *persist.State[[]audits.Template]
	collections *persist.State[[]library.Collection]
	hotels      *persist.State[[]string]
	departments *persist.State[[]string]

	all []hydrator
}

// New binds every collection and setting to st, seeded with the demo data.
// sessions is used to end a user's sessions when the user is removed or
// put on hold.
func New(st store.Store, sessions session.Store, opts Options) *App {
	if opts.Persist.Clock == nil {
		opts.Persist.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Persist.Logger = opts.Logger

	a := &App{
		clock:    opts.Persist.Clock,
		log:      opts.Logger,
		sessions: sessions,
	}
	a.reports = incidents.NewService(a.newID).WithClock(a.clock.Now)

	a.audits = persist.New[[]audits.Audit](persist.CollectionBinding[audits.Audit]{Store: st, Collection: store.Audits}, seed.Audits(), opts.Persist)
	a.incidents = persist.New[[]incidents.Incident](persist.CollectionBinding[incidents.Incident]{Store: st, Collection: store.Incidents}, seed.Incidents(), opts.Persist)
	a.users = persist.New[[]users.User](persist.CollectionBinding[users.User]{Store: st, Collection: store.Users}, seed.Users(), opts.Persist)
	a.sops = persist.New[[]library.SOP](persist.CollectionBinding[library.SOP]{Store: st, Collection: store.SOPs}, seed.SOPs(), opts.Persist)
	a.templates = persist.New[[]audits.Template](persist.CollectionBinding[audits.Template]{Store: st, Collection: store.Templates}, seed.Templates(), opts.Persist)
	a.collections = persist.New[[]library.Collection](persist.CollectionBinding[library.Collection]{Store: st, Collection: store.Collections}, seed.Collections(), opts.Persist)
	a.hotels = persist.New[[]string](persist.SettingBinding[[]string]{Store: st, Key: store.SettingHotels}, seed.Hotels(), opts.Persist)
	a.departments = persist.New[[]string](persist.SettingBinding[[]string]{Store: st, Key: store.SettingDepartments}, seed.Departments(), opts.Persist)

	a.all = []hydrator{a.audits, a.incidents, a.users, a.sops, a.templates, a.collections, a.hotels, a.departments}
	return a
}

func (a *App) newID(prefix string) string { return utils.NewID(prefix, a.clock.Now()) }

// Start hydrates every state concurrently. Read failures are logged by the
// states themselves; only context errors are returned.
func (a *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, h := range a.all {
		h := h
		g.Go(func() error { return h.Hydrate(gctx) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	a.log.Info("state hydrated", "collections", len(a.all))
	return nil
}

// Stop writes every pending change now.
func (a *App) Stop(ctx context.Context) {
	var wg sync.WaitGroup
	for _, h := range a.all {
		wg.Add(1)
		go func(h hydrator) {
			defer wg.Done()
			h.Flush(ctx)
		}(h)
	}
	wg.Wait()
	a.log.Info("state flushed")
}

type CollectionStatus struct {
	Name   string `json:"name"`
	Loaded bool   `json:"loaded"`
	Saving bool   `json:"saving"`
}

// SyncStatus is the loading and saving indicator. Loaded is true once every
// state is loaded; Saving while any state is saving.
type SyncStatus struct {
	Loaded      bool               `json:"loaded"`
	Saving      bool               `json:"saving"`
	Collections []CollectionStatus `json:"collections"`
}

func (a *App) Status() SyncStatus {
	out := SyncStatus{Loaded: true, Collections: make([]CollectionStatus, 0, len(a.all))}
	for _, h := range a.all {
		cs := CollectionStatus{Name: h.Name(), Loaded: h.Loaded(), Saving: h.Saving()}
		out.Loaded = out.Loaded && cs.Loaded
		out.Saving = out.Saving || cs.Saving
		out.Collections = append(out.Collections, cs)
	}
	return out
}

// Equal compares two indicators field by field.
func (s SyncStatus) Equal(o SyncStatus) bool {
	if s.Loaded != o.Loaded || s.Saving != o.Saving || len(s.Collections) != len(o.Collections) {
		return false
	}
	for i := range s.Collections {
		if s.Collections[i] != o.Collections[i] {
			return false
		}
	}
	return true
}

func (a *App) Ready() bool { return a.Status().Loaded }

var errLoading = apperror.NewUnavailable("Loading local database...")

// lock takes the mutation lock once every state is loaded. A change made
// earlier would be replaced by the hydrated value and never written.
func (a *App) lock() error {
	if !a.Ready() {
		return errLoading
	}
	a.mu.Lock()
	return nil
}

// Snapshot readers. The returned slices are shared; callers must not modify them.

func (a *App) Audits() []audits.Audit            { return a.audits.Get() }
func (a *App) Incidents() []incidents.Incident   { return a.incidents.Get() }
func (a *App) Users() []users.User               { return a.users.Get() }
func (a *App) SOPs() []library.SOP               { return a.sops.Get() }
func (a *App) Templates() []audits.Template      { return a.templates.Get() }
func (a *App) Collections() []library.Collection { return a.collections.Get() }
func (a *App) Hotels() []string                  { return a.hotels.Get() }
func (a *App) Departments() []string             { return a.departments.Get() }

// reporting.Repository

func (a *App) ListAudits(ctx context.Context) ([]audits.Audit, error) { return a.Audits(), nil }
func (a *App) ListIncidents(ctx context.Context) ([]incidents.Incident, error) {
	return a.Incidents(), nil
}
func (a *App) ListUsers(ctx context.Context) ([]users.User, error) { return a.Users(), nil }

// replaceByID returns a copy of list with the element whose id matches v replaced.
func replaceByID[T store.Identified](list []T, v T) ([]T, bool) {
	out := make([]T, len(list))
	copy(out, list)
	for i := range out {
		if out[i].RecordID() == v.RecordID() {
			out[i] = v
			return out, true
		}
	}
	return nil, false
}

// removeByID returns a copy of list without id.
func removeByID[T store.Identified](list []T, id string) ([]T, bool) {
	out := make([]T, 0, len(list))
	found := false
	for _, v := range list {
		if v.RecordID() == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	return out, found
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}
