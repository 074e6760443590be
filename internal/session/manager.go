package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/cplayer11/video-highlight-tool/internal/store"
	"github.com/cplayer11/video-highlight-tool/internal/syncbridge"
	"github.com/cplayer11/video-highlight-tool/models"
)

// ErrSuperseded is returned when an upload's transcript arrives after a
// newer upload already started; its result must not overwrite the newer
// session state.
var ErrSuperseded = errors.New("session: upload superseded by a newer one")

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session: not found")

// Config tunes the sessions a manager builds.
type Config struct {
	MaxSessions  int
	TickInterval time.Duration
	GapRate      float64
	SeekEpsilon  float64
}

// Epoch is the token identifying one upload attempt. Installing a session
// with a stale epoch fails, which guards against an in-flight transcript
// fetch clobbering the state of a newer upload.
type Epoch uint64

// Manager tracks live sessions in a bounded LRU; evicted sessions are
// stopped and their upload objects released.
type Manager struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *Session]
	log     *logrus.Logger
	cfg     Config
	current Epoch
}

// NewManager creates a session manager.
func NewManager(log *logrus.Logger, cfg Config) (*Manager, error) {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 16
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 250 * time.Millisecond
	}

	m := &Manager{log: log, cfg: cfg}
	cache, err := lru.NewWithEvict[string, *Session](cfg.MaxSessions, func(id string, s *Session) {
		log.WithField("session_id", id).Info("Evicting session")
		s.Close()
	})
	if err != nil {
		return nil, err
	}
	m.cache = cache
	return m, nil
}

// Begin marks the start of a new upload attempt and returns its epoch.
// Any attempt begun earlier becomes stale.
func (m *Manager) Begin() Epoch {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current++
	return m.current
}

// InstallParams carries everything needed to build a session once the
// probe and transcript pipeline has succeeded.
type InstallParams struct {
	Epoch      Epoch
	Duration   float64
	Transcript []models.Section
	ObjectPath string
	Uploads    *store.UploadStore
	View       syncbridge.View
}

// Install builds, registers, and starts a session for a completed upload.
// A stale epoch returns ErrSuperseded and leaves every existing session
// untouched; the caller still owns (and must release) the upload object in
// that case.
func (m *Manager) Install(p InstallParams) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.Epoch != m.current {
		return nil, ErrSuperseded
	}

	id := uuid.NewString()
	s := build(buildParams{
		id:         id,
		duration:   p.Duration,
		sections:   p.Transcript,
		objectPath: p.ObjectPath,
		uploads:    p.Uploads,
		gapRate:    m.cfg.GapRate,
		epsilon:    m.cfg.SeekEpsilon,
		tick:       m.cfg.TickInterval,
		log:        m.log.WithField("session_id", id),
		view:       p.View,
	})
	s.start()
	m.cache.Add(id, s)
	m.log.WithFields(logrus.Fields{"session_id": id, "duration": p.Duration}).Info("Session installed")
	return s, nil
}

// Get returns a live session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.cache.Get(id); ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Remove stops a session and drops it from the manager.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.cache.Contains(id) {
		return ErrNotFound
	}
	m.cache.Remove(id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

// Shutdown stops every live session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Purge()
}
