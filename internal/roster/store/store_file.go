package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	"github.com/lucky-arya/CSIxMKITOS/internal/store/atomicfile"
	"github.com/lucky-arya/CSIxMKITOS/internal/store/tracer"
)

const rosterFileMode = 0o644

// rosterRow is the CSV serialization of one student. Kept separate from the
// domain model so the header names stay locked to the file format.
type rosterRow struct {
	Name        string `csv:"name"`
	Email       string `csv:"email"`
	Eligibility string `csv:"eligibility"`
}

// FileStore persists the roster as a CSV flat file. Every read loads the
// whole file and every mutation rewrites it through a temp-file rename, so a
// crash mid-write leaves the previous roster intact.
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

// NewFile constructs a CSV-backed roster store at the given path. The file
// does not need to exist yet; a missing file reads as an empty roster.
func NewFile(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path, tracer: tracer.NewNoop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) List(ctx context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *FileStore) FindByKey(ctx context.Context, name, email string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	key := models.MatchKey(name, email)
	for _, st := range students {
		if st.Key() == key {
			found := st
			return &found, nil
		}
	}
	return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
}

func (s *FileStore) Append(ctx context.Context, student models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load(ctx)
	if err != nil {
		return err
	}
	key := student.Key()
	for _, st := range students {
		if st.Key() == key {
			return fmt.Errorf("student already on roster: %w", sentinel.ErrAlreadyExists)
		}
	}
	return s.save(ctx, append(students, student))
}

func (s *FileStore) ReplaceAll(ctx context.Context, students []models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, students)
}

// ExportCSV returns the raw file bytes so admin downloads see exactly what
// is on disk. A missing file exports as the header-only bootstrap document.
func (s *FileStore) ExportCSV(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	_, span := s.tracer.Start(ctx, tracer.SpanRosterRead,
		tracer.String(tracer.AttrFilePath, s.path),
	)
	defer func() { span.End(err) }()

	data, readErr := os.ReadFile(s.path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			span.SetAttributes(tracer.Bool(tracer.AttrFileMissing, true))
			return headerOnlyCSV()
		}
		err = fmt.Errorf("read roster file: %w", readErr)
		return nil, err
	}
	return data, nil
}

func headerOnlyCSV() ([]byte, error) {
	data, err := gocsv.MarshalBytes(&[]rosterRow{})
	if err != nil {
		return nil, fmt.Errorf("encode roster header: %w", err)
	}
	return data, nil
}

// load reads and parses the whole roster file. Callers hold s.mu.
func (s *FileStore) load(ctx context.Context) (students []models.Student, err error) {
	_, span := s.tracer.Start(ctx, tracer.SpanRosterRead,
		tracer.String(tracer.AttrFilePath, s.path),
	)
	defer func() { span.End(err) }()

	data, readErr := os.ReadFile(s.path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			span.SetAttributes(tracer.Bool(tracer.AttrFileMissing, true))
			return nil, nil
		}
		err = fmt.Errorf("read roster file: %w", readErr)
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var rows []rosterRow
	if parseErr := gocsv.UnmarshalBytes(data, &rows); parseErr != nil {
		err = fmt.Errorf("parse roster file %s: %v: %w", s.path, parseErr, sentinel.ErrMalformed)
		return nil, err
	}

	students = make([]models.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, models.Student{
			Name:        row.Name,
			Email:       row.Email,
			Eligibility: row.Eligibility,
		})
	}
	span.SetAttributes(tracer.Int64(tracer.AttrRecordCount, int64(len(students))))
	return students, nil
}

// save rewrites the whole roster file. Callers hold s.mu. An empty slice
// produces a header-only file, the roster's bootstrap state.
func (s *FileStore) save(ctx context.Context, students []models.Student) (err error) {
	_, span := s.tracer.Start(ctx, tracer.SpanRosterWrite,
		tracer.String(tracer.AttrFilePath, s.path),
		tracer.Int64(tracer.AttrRecordCount, int64(len(students))),
	)
	defer func() { span.End(err) }()

	rows := make([]rosterRow, 0, len(students))
	for _, st := range students {
		rows = append(rows, rosterRow{
			Name:        st.Name,
			Email:       st.Email,
			Eligibility: st.Eligibility,
		})
	}
	data, marshalErr := gocsv.MarshalBytes(&rows)
	if marshalErr != nil {
		err = fmt.Errorf("encode roster: %w", marshalErr)
		return err
	}
	if writeErr := atomicfile.Write(s.path, data, rosterFileMode); writeErr != nil {
		err = fmt.Errorf("write roster file: %w", writeErr)
		return err
	}
	span.AddEvent(tracer.EventFileReplaced)
	return nil
}

var _ Store = (*FileStore)(nil)
