package session

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"seodash/internal/store"
	"sync"

	"gopkg.in/yaml.v3"
)

const currentVersion = 1

type sessionFile struct {
	Version int                    `yaml:"version"`
	Project string                 `yaml:"project,omitempty"`
	Queries map[string]store.Query `yaml:"queries,omitempty"`
}

// Session is the CLI state kept between invocations: the selected project
// and the last query used per resource. Entity data is never persisted.
type Session struct {
	path    string
	project string
	queries map[string]store.Query
	mu      sync.RWMutex
}

func New(path string) (*Session, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	return &Session{
		path:    path,
		queries: make(map[string]store.Query),
	}, nil
}

func (s *Session) Path() string {
	return s.path
}

func (s *Session) Project() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project
}

func (s *Session) SetProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = id
}

func (s *Session) Query(resource string) store.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queries[resource]
}

func (s *Session) SetQuery(resource string, q store.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[resource] = q
}

func (s *Session) ClearQuery(resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.queries, resource)
}

// Save writes the session atomically. Saves are serialized so concurrent
// callers never share the temporary file.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := sessionFile{
		Version: currentVersion,
		Project: s.project,
		Queries: maps.Clone(s.queries),
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}

func (s *Session) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var file sessionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse session file %q: %w", s.path, err)
	}
	if file.Version > currentVersion {
		return fmt.Errorf("session file %q has unsupported version %d", s.path, file.Version)
	}

	s.project = file.Project
	s.queries = make(map[string]store.Query, len(file.Queries))
	maps.Copy(s.queries, file.Queries)
	return nil
}
