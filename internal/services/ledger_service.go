package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"ledger/internal/core"
	"ledger/internal/ingest"
	"ledger/internal/payload"
	"ledger/internal/remote"
	"ledger/internal/store"
)

// SyncPublisher publishes collection-changed notifications. The AMQP
// client satisfies it; nil disables publishing.
type SyncPublisher interface {
	PublishLedgerSynced(ctx context.Context, userKey string, recordCount int) error
}

// LedgerService orchestrates the transaction collection: local mutations
// apply first, then the whole outbound set is written to the remote
// backend and a sync notification is published. Remote write failures are
// surfaced once; there is no rollback or retry.
type LedgerService struct {
	store          *store.Store
	backend        remote.Backend
	publisher      SyncPublisher
	userKey        string
	defaultProject string
	newID          func() string
}

type Option func(*LedgerService)

// WithIDGenerator injects the record id generator, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *LedgerService) { s.newID = gen }
}

// WithPublisher wires the sync notification publisher.
func WithPublisher(p SyncPublisher) Option {
	return func(s *LedgerService) { s.publisher = p }
}

func NewLedgerService(backend remote.Backend, userKey, defaultProject string, opts ...Option) *LedgerService {
	if strings.TrimSpace(defaultProject) == "" {
		defaultProject = core.DefaultProject
	}
	s := &LedgerService{
		backend:        backend,
		userKey:        userKey,
		defaultProject: defaultProject,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	s.store = store.New(
		store.WithSync(s.writeRemote),
		store.WithIDGenerator(s.newID),
	)
	return s
}

// Snapshot returns the current collection.
func (s *LedgerService) Snapshot() []core.Transaction {
	return s.store.Snapshot()
}

// Upsert validates and stores a single record, then persists the whole
// collection. The type label is kept as entered; canonicalization happens
// only on the outbound payload.
func (s *LedgerService) Upsert(ctx context.Context, rec core.Transaction, editingID string) (core.Transaction, error) {
	if strings.TrimSpace(rec.Project) == "" {
		rec.Project = s.defaultProject
	}
	if err := rec.Validate(); err != nil {
		return core.Transaction{}, err
	}

	stored := s.store.Upsert(rec, editingID)
	if err := s.SaveToCloud(ctx); err != nil {
		return stored, err
	}
	return stored, nil
}

// Remove deletes a record and persists the updated collection. Unknown
// ids still trigger a save, keeping remote state aligned.
func (s *LedgerService) Remove(ctx context.Context, id string) error {
	s.store.Remove(id)
	return s.SaveToCloud(ctx)
}

// SaveToCloud writes the outbound form of the current collection to the
// remote backend and publishes a sync notification.
func (s *LedgerService) SaveToCloud(ctx context.Context) error {
	return s.writeRemote(ctx, s.store.Snapshot())
}

func (s *LedgerService) writeRemote(ctx context.Context, transactions []core.Transaction) error {
	rows := payload.Build(transactions)
	if err := s.backend.Write(ctx, s.userKey, rows); err != nil {
		return fmt.Errorf("write remote collection: %w", err)
	}

	if s.publisher != nil {
		// Notification only; the collection is already persisted.
		if err := s.publisher.PublishLedgerSynced(ctx, s.userKey, len(rows)); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync notification",
				"user_key", s.userKey, "error", err)
		}
	}
	return nil
}

// Load reads the stored collection from the remote backend, validates it,
// and replaces the local collection with the accepted records. found is
// false when the user key was never written; the local collection is left
// untouched in that case.
func (s *LedgerService) Load(ctx context.Context) (ingest.Result, bool, error) {
	rows, found, err := s.backend.Read(ctx, s.userKey)
	if err != nil {
		return ingest.Result{}, false, fmt.Errorf("read remote collection: %w", err)
	}
	if !found {
		return ingest.Result{}, false, nil
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return ingest.Result{}, false, fmt.Errorf("encode remote collection: %w", err)
	}

	res := s.validate(raw)
	s.store.ReplaceAll(res.Records)
	return res, true, nil
}

// ImportJSON validates a raw JSON collection and replaces the local one
// with the accepted records, then persists. selectedProject becomes the
// default for records missing one; blank or the all-projects sentinel
// falls back to the configured default. A payload that is not a
// collection, or that yields no accepted records, leaves local and
// remote state untouched.
func (s *LedgerService) ImportJSON(ctx context.Context, raw []byte, selectedProject string) (ingest.Result, error) {
	project := strings.TrimSpace(selectedProject)
	if project == "" || project == core.AllProjects {
		project = s.defaultProject
	}

	res := s.validateWithProject(raw, project)
	for _, d := range res.Defects {
		if d.IsGlobal() {
			return res, nil
		}
	}
	if len(res.Records) == 0 {
		return res, nil
	}

	s.store.ReplaceAll(res.Records)
	if err := s.SaveToCloud(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// Transfer moves the named records into targetProject and persists the
// whole updated collection once. The returned count is the requested id
// count.
func (s *LedgerService) Transfer(ctx context.Context, ids []string, targetProject string) (int, error) {
	return s.store.BulkReassignProject(ctx, ids, targetProject)
}

func (s *LedgerService) validate(raw []byte) ingest.Result {
	return ingest.Validate(raw, s.defaultProject, s.newID)
}

func (s *LedgerService) validateWithProject(raw []byte, project string) ingest.Result {
	return ingest.Validate(raw, project, s.newID)
}
