package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	"github.com/lucky-arya/CSIxMKITOS/internal/store/atomicfile"
	"github.com/lucky-arya/CSIxMKITOS/internal/store/tracer"
)

const referenceFileMode = 0o644

// FileStore persists references as a JSON object keyed by reference ID.
// Every read loads the whole file and every mutation rewrites it through a
// temp-file rename, so a crash mid-write leaves the previous map intact.
type FileStore struct {
	mu     sync.Mutex
	path   string
	tracer tracer.Tracer
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithTracer attaches a tracer for read/write span instrumentation.
func WithTracer(t tracer.Tracer) FileOption {
	return func(s *FileStore) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewFile constructs a JSON-backed reference store at the given path. The
// file does not need to exist yet; a missing file reads as an empty map.
func NewFile(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path, tracer: tracer.NewNoop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) All(ctx context.Context) ([]models.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return collect(refs), nil
}

func (s *FileStore) FindByID(ctx context.Context, id string) (*models.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ref, ok := refs[id]
	if !ok {
		return nil, fmt.Errorf("reference %s: %w", id, sentinel.ErrNotFound)
	}
	return &ref, nil
}

func (s *FileStore) FindByStudent(ctx context.Context, name, email string) (*models.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		if ref.MatchesStudent(name, email) {
			found := ref
			return &found, nil
		}
	}
	return nil, fmt.Errorf("no reference for student: %w", sentinel.ErrNotFound)
}

func (s *FileStore) Save(ctx context.Context, ref models.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, err := s.load(ctx)
	if err != nil {
		return err
	}
	if refs == nil {
		refs = make(map[string]models.Reference, 1)
	}
	refs[ref.ID] = ref
	return s.save(ctx, refs)
}

func (s *FileStore) MarkDownloaded(ctx context.Context, id string, now time.Time) (*models.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ref, ok := refs[id]
	if !ok {
		return nil, fmt.Errorf("reference %s: %w", id, sentinel.ErrNotFound)
	}

	stamp := now.UTC()
	ref.Downloaded = true
	ref.DownloadCount++
	ref.LastDownload = &stamp
	refs[id] = ref

	if err := s.save(ctx, refs); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (s *FileStore) ReplaceAll(ctx context.Context, refs []models.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]models.Reference, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}
	return s.save(ctx, byID)
}

// ExportJSON returns the raw file bytes so admin downloads see exactly what
// is on disk. A missing file exports as an empty JSON object.
func (s *FileStore) ExportJSON(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	_, span := s.tracer.Start(ctx, tracer.SpanReferencesRead,
		tracer.String(tracer.AttrFilePath, s.path),
	)
	defer func() { span.End(err) }()

	data, readErr := os.ReadFile(s.path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			span.SetAttributes(tracer.Bool(tracer.AttrFileMissing, true))
			return []byte("{}"), nil
		}
		err = fmt.Errorf("read reference file: %w", readErr)
		return nil, err
	}
	return data, nil
}

// load reads and parses the whole reference file. Callers hold s.mu.
func (s *FileStore) load(ctx context.Context) (refs map[string]models.Reference, err error) {
	_, span := s.tracer.Start(ctx, tracer.SpanReferencesRead,
		tracer.String(tracer.AttrFilePath, s.path),
	)
	defer func() { span.End(err) }()

	data, readErr := os.ReadFile(s.path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			span.SetAttributes(tracer.Bool(tracer.AttrFileMissing, true))
			return nil, nil
		}
		err = fmt.Errorf("read reference file: %w", readErr)
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if parseErr := json.Unmarshal(data, &refs); parseErr != nil {
		err = fmt.Errorf("parse reference file %s: %v: %w", s.path, parseErr, sentinel.ErrMalformed)
		return nil, err
	}
	// Hand-edited files may omit the id field inside the record; the map key
	// is authoritative.
	for id, ref := range refs {
		if ref.ID == "" {
			ref.ID = id
			refs[id] = ref
		}
	}
	span.SetAttributes(tracer.Int64(tracer.AttrRecordCount, int64(len(refs))))
	return refs, nil
}

// save rewrites the whole reference file. Callers hold s.mu. An empty map
// produces an empty JSON object, the store's bootstrap state.
func (s *FileStore) save(ctx context.Context, refs map[string]models.Reference) (err error) {
	_, span := s.tracer.Start(ctx, tracer.SpanReferencesWrite,
		tracer.String(tracer.AttrFilePath, s.path),
		tracer.Int64(tracer.AttrRecordCount, int64(len(refs))),
	)
	defer func() { span.End(err) }()

	if refs == nil {
		refs = map[string]models.Reference{}
	}
	data, marshalErr := json.MarshalIndent(refs, "", "  ")
	if marshalErr != nil {
		err = fmt.Errorf("encode references: %w", marshalErr)
		return err
	}
	if writeErr := atomicfile.Write(s.path, data, referenceFileMode); writeErr != nil {
		err = fmt.Errorf("write reference file: %w", writeErr)
		return err
	}
	span.AddEvent(tracer.EventFileReplaced)
	return nil
}

// collect flattens the keyed map into a slice with a stable ID order, which
// keeps list output and stats deterministic across calls.
func collect(refs map[string]models.Reference) []models.Reference {
	out := make([]models.Reference, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ Store = (*FileStore)(nil)
