package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/domain/commission"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
)

// Store is a process-local document store. Every repository built on the
// same Store shares one mutex; WithTx holds it for the whole unit of work
// and restores a snapshot when fn fails.
type Store struct {
	mu   sync.Mutex
	data *data
}

type data struct {
	seq  int64
	seqs map[string]int64

	jobs          map[string]job.Job
	applications  map[string]application.Application
	briefs        map[string]brief.Brief
	proposals     map[string]brief.Proposal
	matches       map[string]match.Match
	messages      map[string]match.Message
	commission    *commission.Settings
	notifications map[string]notification.Notification
	preferences   map[string]notification.NotificationPreference
	users         map[string]identity.Identity
	profiles      map[string]string
}

func newData() *data {
	return &data{
		seqs:          make(map[string]int64),
		jobs:          make(map[string]job.Job),
		applications:  make(map[string]application.Application),
		briefs:        make(map[string]brief.Brief),
		proposals:     make(map[string]brief.Proposal),
		matches:       make(map[string]match.Match),
		messages:      make(map[string]match.Message),
		notifications: make(map[string]notification.Notification),
		preferences:   make(map[string]notification.NotificationPreference),
		users:         make(map[string]identity.Identity),
		profiles:      make(map[string]string),
	}
}

func NewStore() *Store {
	return &Store{data: newData()}
}

type txKey struct{}

// lock acquires the store mutex unless ctx already runs inside one of this
// store's transactions.
func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
		if p := recover(); p != nil {
			slog.Error("memory store transaction panicked, state restored", "panic", p)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

// track assigns an insertion sequence used to break created_at ties.
func (d *data) track(id string) {
	d.seq++
	d.seqs[id] = d.seq
}

func (d *data) clone() *data {
	c := &data{
		seq:           d.seq,
		seqs:          cloneMap(d.seqs),
		jobs:          cloneMap(d.jobs),
		applications:  cloneMap(d.applications),
		briefs:        cloneMap(d.briefs),
		proposals:     cloneMap(d.proposals),
		matches:       cloneMap(d.matches),
		messages:      cloneMap(d.messages),
		notifications: cloneMap(d.notifications),
		preferences:   cloneMap(d.preferences),
		users:         cloneMap(d.users),
		profiles:      cloneMap(d.profiles),
	}
	if d.commission != nil {
		settings := *d.commission
		c.commission = &settings
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// newestFirst sorts items by created_at descending, newest insert first on ties.
func newestFirst[T any](d *data, items []T, id func(T) string, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return d.seqs[id(items[i])] > d.seqs[id(items[j])]
	})
}

func oldestFirst[T any](d *data, items []T, id func(T) string, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return d.seqs[id(items[i])] < d.seqs[id(items[j])]
	})
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
