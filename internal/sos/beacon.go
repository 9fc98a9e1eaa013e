package sos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vigia-app/vigia-backend/internal/alert"
	"github.com/vigia-app/vigia-backend/internal/config"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service"
	"github.com/vigia-app/vigia-backend/pkg/e"
	"github.com/vigia-app/vigia-backend/pkg/geo"
)

// EventStore persists SOS emissions.
type EventStore interface {
	InsertEvent(ctx context.Context, event *models.SOSEvent) error
}

// BlobStore stores packaged audio and returns a URL for the stored object.
type BlobStore interface {
	UploadBlob(ctx context.Context, key string, data []byte) (string, error)
}

// Session is the live state of one armed SOS beacon. It exists only while
// armed and is discarded entirely on stop.
type Session struct {
	UserID    uuid.UUID
	StartedAt time.Time

	mu    sync.Mutex
	coord geo.Coordinate
	audio [][]byte

	cancelWatch CancelFunc
	capture     AudioCapture
	ticker      *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once

	mgr  *Manager
	feed *ClientFeed
}

// Stop disarms the beacon. Safe to call more than once and concurrently
// with an in-flight emission; a final event may still land after Stop.
func (s *Session) Stop() {
	s.mgr.stop(s)
}

// setCoordinate is the location watch callback: last write wins.
func (s *Session) setCoordinate(c geo.Coordinate) {
	s.mu.Lock()
	s.coord = c
	s.mu.Unlock()
}

func (s *Session) coordinate() geo.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coord
}

// appendAudio is the capture data callback.
func (s *Session) appendAudio(chunk []byte) {
	s.mu.Lock()
	s.audio = append(s.audio, chunk)
	s.mu.Unlock()
}

// drainAudio packages the buffered chunks into one object and clears the
// buffer. Returns nil when nothing accumulated since the last emission.
func (s *Session) drainAudio() []byte {
	s.mu.Lock()
	chunks := s.audio
	s.audio = nil
	s.mu.Unlock()

	if len(chunks) == 0 {
		return nil
	}
	var size int
	for _, c := range chunks {
		size += len(c)
	}
	data := make([]byte, 0, size)
	for _, c := range chunks {
		data = append(data, c...)
	}
	return data
}

func (s *Session) clearAudio() {
	s.mu.Lock()
	s.audio = nil
	s.mu.Unlock()
}

// Manager owns the active SOS sessions and runs their emission loops.
type Manager struct {
	directory service.AuthDirectory
	events    EventStore
	blobs     BlobStore
	alerts    alert.Publisher
	logger    *logrus.Logger
	interval  time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager(
	directory service.AuthDirectory,
	events EventStore,
	blobs BlobStore,
	alerts alert.Publisher,
	logger *logrus.Logger,
	cfg *config.Config,
) *Manager {
	return &Manager{
		directory: directory,
		events:    events,
		blobs:     blobs,
		alerts:    alerts,
		logger:    logger,
		interval:  cfg.SOSEmitInterval,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Start arms a beacon for the user. The initial fix must succeed or the
// session is not created at all; audio capture failure is non-fatal. One
// emission happens immediately, then every interval until Stop. A second
// Start for an already-armed user returns the existing session.
func (m *Manager) Start(ctx context.Context, userID uuid.UUID, loc LocationSource, capture AudioCapture) (*Session, error) {
	log := m.logger.WithFields(logrus.Fields{
		"component": "sos",
		"method":    "Start",
		"user_id":   userID,
	})

	coord, err := loc.GetOnce(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to obtain initial location fix")
		return nil, e.Wrap("sos: initial location fix", e.ErrLocationUnavailable)
	}

	s := &Session{
		UserID:    userID,
		StartedAt: time.Now().UTC(),
		coord:     coord,
		capture:   capture,
		done:      make(chan struct{}),
		mgr:       m,
	}
	if feed, ok := loc.(*ClientFeed); ok {
		s.feed = feed
	}

	// Acquire every teardown handle before the session becomes visible: a
	// stop that races with arming must always see the complete session, or
	// no session at all.
	cancel, err := loc.Watch(s.setCoordinate)
	if err != nil {
		log.WithError(err).Warn("Failed to register location watch, emissions will reuse the initial fix")
	} else {
		s.cancelWatch = cancel
	}

	if err := capture.Open(); err != nil {
		log.WithError(err).Warn("Audio capture unavailable, continuing without audio")
	} else {
		capture.OnData(s.appendAudio)
	}

	s.ticker = time.NewTicker(m.interval)

	m.mu.Lock()
	if existing, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		// The armed session wins; unwind this arming attempt so it leaves
		// no watch, capture, or timer behind.
		if s.cancelWatch != nil {
			s.cancelWatch()
		}
		if err := capture.Close(); err != nil {
			log.WithError(err).Warn("Failed to close audio capture after duplicate arm")
		}
		s.ticker.Stop()

		// Re-arming carries a fresher fix than whatever the armed session
		// last saw, so forward it.
		if existing.feed != nil {
			existing.feed.PushLocation(coord)
		} else {
			existing.setCoordinate(coord)
		}
		log.Info("Beacon already armed for user, returning existing session")
		return existing, nil
	}
	m.sessions[userID] = s
	m.mu.Unlock()

	log.Info("SOS beacon armed")

	// First emission right away so the session is live before the first tick.
	m.emit(ctx, s)

	go m.run(s)

	return s, nil
}

// StartClient arms a beacon fed by HTTP pushes: the start request carries
// the initial coordinate, later fixes and audio chunks arrive through
// PushLocation and PushAudio.
func (m *Manager) StartClient(ctx context.Context, userID uuid.UUID, initial *geo.Coordinate, withAudio bool) (*Session, error) {
	feed := NewClientFeed(initial, withAudio)
	return m.Start(ctx, userID, feed, feed)
}

// PushLocation routes a client location fix into the user's armed session.
func (m *Manager) PushLocation(userID uuid.UUID, c geo.Coordinate) error {
	s := m.session(userID)
	if s == nil || s.feed == nil {
		return e.Wrap("sos: no armed session for user", e.ErrNotFound)
	}
	s.feed.PushLocation(c)
	return nil
}

// PushAudio routes a client audio chunk into the user's armed session.
func (m *Manager) PushAudio(userID uuid.UUID, chunk []byte) error {
	s := m.session(userID)
	if s == nil || s.feed == nil {
		return e.Wrap("sos: no armed session for user", e.ErrNotFound)
	}
	s.feed.PushAudio(chunk)
	return nil
}

// StopUser disarms the user's beacon. Returns false when none is armed;
// stopping an idle user is not an error.
func (m *Manager) StopUser(userID uuid.UUID) bool {
	s := m.session(userID)
	if s == nil {
		return false
	}
	m.stop(s)
	return true
}

// StopAll disarms every active beacon, for shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	active := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		active = append(active, s)
	}
	m.mu.Unlock()
	for _, s := range active {
		m.stop(s)
	}
}

// Active reports whether the user currently has an armed beacon.
func (m *Manager) Active(userID uuid.UUID) bool {
	return m.session(userID) != nil
}

func (m *Manager) session(userID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// stop tears the session down. Every step is individually guarded so one
// failing sub-resource never blocks releasing the others.
func (m *Manager) stop(s *Session) {
	s.stopOnce.Do(func() {
		log := m.logger.WithFields(logrus.Fields{
			"component": "sos",
			"method":    "stop",
			"user_id":   s.UserID,
		})

		if s.cancelWatch != nil {
			s.cancelWatch()
		}
		// Close unconditionally: capture may hold the device even when
		// Open reported an error.
		if err := s.capture.Close(); err != nil {
			log.WithError(err).Warn("Failed to close audio capture")
		}
		s.clearAudio()
		close(s.done)
		if s.ticker != nil {
			s.ticker.Stop()
		}

		m.mu.Lock()
		delete(m.sessions, s.UserID)
		m.mu.Unlock()

		log.Info("SOS beacon disarmed")
	})
}

func (m *Manager) run(s *Session) {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			m.emit(context.Background(), s)
		}
	}
}

// emit persists one telemetry snapshot. Every failure is logged and
// swallowed: the beacon keeps beaconing, the next tick is the retry vector.
func (m *Manager) emit(ctx context.Context, s *Session) {
	now := time.Now().UTC()
	log := m.logger.WithFields(logrus.Fields{
		"component": "sos",
		"method":    "emit",
		"user_id":   s.UserID,
	})

	identity, err := m.directory.CurrentUser(ctx, s.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to resolve user for SOS emission, skipping this emission")
		return
	}

	coord := s.coordinate()

	var audioURL string
	if data := s.drainAudio(); len(data) > 0 {
		key := fmt.Sprintf("%s/%s", identity.ID, now.Format(time.RFC3339Nano))
		url, err := m.blobs.UploadBlob(ctx, key, data)
		if err != nil {
			log.WithError(err).Warn("Failed to upload audio, emitting without audio reference")
		} else {
			audioURL = url
		}
	}

	event := &models.SOSEvent{
		UserID:    identity.ID,
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		AudioURL:  audioURL,
		CreatedAt: now,
	}
	if err := m.events.InsertEvent(ctx, event); err != nil {
		log.WithError(err).Error("Failed to persist SOS event")
		return
	}

	if m.alerts != nil {
		alertEvent := alert.Event{
			UserID:    identity.ID,
			Latitude:  coord.Latitude,
			Longitude: coord.Longitude,
			AudioURL:  audioURL,
			Timestamp: now,
		}
		if err := m.alerts.Publish(ctx, alertEvent); err != nil {
			log.WithError(err).Warn("Failed to queue SOS alert")
		}
	}

	log.Debug("SOS emission persisted")
}
