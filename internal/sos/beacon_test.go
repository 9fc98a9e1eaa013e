package sos

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vigia-app/vigia-backend/internal/alert"
	"github.com/vigia-app/vigia-backend/internal/config"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service/mocks"
	"github.com/vigia-app/vigia-backend/pkg/e"
	"github.com/vigia-app/vigia-backend/pkg/geo"
)

const testInterval = 20 * time.Millisecond

type fakeEventStore struct {
	mu     sync.Mutex
	events []*models.SOSEvent
	err    error
}

func (f *fakeEventStore) InsertEvent(_ context.Context, event *models.SOSEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	copied := *event
	f.events = append(f.events, &copied)
	return nil
}

func (f *fakeEventStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeEventStore) last() *models.SOSEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return nil
	}
	return f.events[len(f.events)-1]
}

type fakeBlobStore struct {
	mu       sync.Mutex
	uploads  int
	lastData []byte
	err      error
}

func (f *fakeBlobStore) UploadBlob(_ context.Context, key string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	f.lastData = data
	return "https://blobs.local/" + key, nil
}

func (f *fakeBlobStore) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

type fakeAlertPublisher struct {
	mu     sync.Mutex
	events []alert.Event
}

func (f *fakeAlertPublisher) Publish(_ context.Context, event alert.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAlertPublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type failingCapture struct{}

func (failingCapture) Open() error               { return errors.New("microphone denied") }
func (failingCapture) OnData(func(chunk []byte)) {}
func (failingCapture) Close() error              { return nil }

// hookedLocationSource lets a test run code at watch-registration time and
// observe whether the returned cancel func was ever invoked.
type hookedLocationSource struct {
	coord     geo.Coordinate
	onWatch   func()
	mu        sync.Mutex
	cancelled bool
}

func (h *hookedLocationSource) GetOnce(context.Context) (geo.Coordinate, error) {
	return h.coord, nil
}

func (h *hookedLocationSource) Watch(func(geo.Coordinate)) (CancelFunc, error) {
	if h.onWatch != nil {
		h.onWatch()
	}
	return func() {
		h.mu.Lock()
		h.cancelled = true
		h.mu.Unlock()
	}, nil
}

func (h *hookedLocationSource) watchCancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

func newTestManager(t *testing.T) (*Manager, *mocks.MockAuthDirectory, *fakeEventStore, *fakeBlobStore, *fakeAlertPublisher) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockAuthDirectory(ctrl)
	events := &fakeEventStore{}
	blobs := &fakeBlobStore{}
	alerts := &fakeAlertPublisher{}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{SOSEmitInterval: testInterval}

	m := NewManager(directory, events, blobs, alerts, logger, cfg)
	return m, directory, events, blobs, alerts
}

func expectIdentity(directory *mocks.MockAuthDirectory, userID uuid.UUID) {
	directory.EXPECT().
		CurrentUser(gomock.Any(), userID).
		Return(&models.UserIdentity{ID: userID, Role: models.RoleUser}, nil).
		AnyTimes()
}

func TestStart_LocationFailure_NoSessionNoEvents(t *testing.T) {
	m, directory, events, _, _ := newTestManager(t)
	userID := uuid.New()
	directory.EXPECT().CurrentUser(gomock.Any(), gomock.Any()).Times(0)

	// A feed with no initial coordinate cannot produce a fix.
	session, err := m.StartClient(context.Background(), userID, nil, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrLocationUnavailable)
	assert.Nil(t, session)
	assert.False(t, m.Active(userID))
	assert.Equal(t, 0, events.count())
}

func TestStart_AudioFailure_StillEmitsImmediately(t *testing.T) {
	m, directory, events, _, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	feed := NewClientFeed(&geo.Coordinate{Latitude: 19.43, Longitude: -99.13}, false)
	session, err := m.Start(context.Background(), userID, feed, failingCapture{})
	require.NoError(t, err)
	defer session.Stop()

	// The initial emission happens before Start returns.
	require.Equal(t, 1, events.count())
	assert.Empty(t, events.last().AudioURL)
	assert.True(t, m.Active(userID))

	// And the repeating emission is scheduled despite the capture failure.
	require.Eventually(t, func() bool {
		return events.count() >= 2
	}, time.Second, testInterval/2)
}

func TestEmit_UsesLatestCoordinate(t *testing.T) {
	m, directory, events, _, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	initial := geo.Coordinate{Latitude: 19.43, Longitude: -99.13}
	session, err := m.StartClient(context.Background(), userID, &initial, false)
	require.NoError(t, err)
	defer session.Stop()

	moved := geo.Coordinate{Latitude: 19.50, Longitude: -99.20}
	require.NoError(t, m.PushLocation(userID, moved))

	require.Eventually(t, func() bool {
		last := events.last()
		return last != nil && last.Latitude == moved.Latitude && last.Longitude == moved.Longitude
	}, time.Second, testInterval/2)
}

func TestEmit_PackagesAndUploadsAudio(t *testing.T) {
	m, directory, events, blobs, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	initial := geo.Coordinate{Latitude: 19.43, Longitude: -99.13}
	session, err := m.StartClient(context.Background(), userID, &initial, true)
	require.NoError(t, err)
	defer session.Stop()

	require.NoError(t, m.PushAudio(userID, []byte("chunk-1")))
	require.NoError(t, m.PushAudio(userID, []byte("chunk-2")))

	require.Eventually(t, func() bool {
		return blobs.uploadCount() >= 1
	}, time.Second, testInterval/2)

	assert.Equal(t, []byte("chunk-1chunk-2"), blobs.lastData)
	require.Eventually(t, func() bool {
		last := events.last()
		return last != nil && last.AudioURL != ""
	}, time.Second, testInterval/2)
}

func TestEmit_UploadFailure_EmitsWithoutAudio(t *testing.T) {
	m, directory, events, blobs, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)
	blobs.err = errors.New("bucket unavailable")

	initial := geo.Coordinate{Latitude: 19.43, Longitude: -99.13}
	session, err := m.StartClient(context.Background(), userID, &initial, true)
	require.NoError(t, err)
	defer session.Stop()

	require.NoError(t, m.PushAudio(userID, []byte("chunk")))

	before := events.count()
	require.Eventually(t, func() bool {
		return events.count() > before
	}, time.Second, testInterval/2)
	assert.Empty(t, events.last().AudioURL)
}

func TestEmit_AuthFailureSkipsEmissionOnly(t *testing.T) {
	m, directory, events, _, _ := newTestManager(t)
	userID := uuid.New()
	directory.EXPECT().
		CurrentUser(gomock.Any(), userID).
		Return(nil, errors.New("auth unavailable")).
		AnyTimes()

	initial := geo.Coordinate{Latitude: 19.43, Longitude: -99.13}
	session, err := m.StartClient(context.Background(), userID, &initial, false)
	require.NoError(t, err)
	defer session.Stop()

	// The beacon stays armed and keeps trying, but nothing is persisted
	// while auth is down.
	time.Sleep(3 * testInterval)
	assert.Equal(t, 0, events.count())
	assert.True(t, m.Active(userID))
}

func TestStop_IdempotentAndStopsEmissions(t *testing.T) {
	m, directory, events, _, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	initial := geo.Coordinate{Latitude: 19.43, Longitude: -99.13}
	session, err := m.StartClient(context.Background(), userID, &initial, false)
	require.NoError(t, err)

	session.Stop()
	session.Stop()
	assert.False(t, m.StopUser(userID))
	assert.False(t, m.Active(userID))

	// No further events past the interval once stopped. A final in-flight
	// emission may still land right at Stop, so let it settle first.
	time.Sleep(testInterval)
	count := events.count()
	time.Sleep(4 * testInterval)
	assert.Equal(t, count, events.count())

	// Fixes pushed after stop have nowhere to go.
	assert.Error(t, m.PushLocation(userID, initial))
}

func TestStart_StopDuringArming_LeavesNoDanglingWatch(t *testing.T) {
	m, directory, _, _, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	src := &hookedLocationSource{coord: geo.Coordinate{Latitude: 19.43, Longitude: -99.13}}
	var stoppedDuringArming bool
	// Disarm from inside the watch registration, i.e. while Start is still
	// assembling the session.
	src.onWatch = func() {
		stoppedDuringArming = m.StopUser(userID)
	}

	session, err := m.Start(context.Background(), userID, src, failingCapture{})
	require.NoError(t, err)

	// The session is not visible until arming completes, so the mid-arming
	// stop finds nothing to disarm and the beacon comes up armed.
	assert.False(t, stoppedDuringArming)
	assert.True(t, m.Active(userID))
	assert.False(t, src.watchCancelled())

	// A real stop afterwards tears the watch down.
	session.Stop()
	assert.True(t, src.watchCancelled())
	assert.False(t, m.Active(userID))
}

func TestStart_DuplicateArmUnwindsItsOwnWatch(t *testing.T) {
	m, directory, _, _, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	first := &hookedLocationSource{coord: geo.Coordinate{Latitude: 19.43, Longitude: -99.13}}
	session, err := m.Start(context.Background(), userID, first, failingCapture{})
	require.NoError(t, err)
	defer session.Stop()

	second := &hookedLocationSource{coord: geo.Coordinate{Latitude: 19.50, Longitude: -99.20}}
	again, err := m.Start(context.Background(), userID, second, failingCapture{})
	require.NoError(t, err)
	assert.Same(t, session, again)

	// The losing arm attempt releases its own subscription; the armed one
	// stays live but picks up the fresher fix.
	assert.True(t, second.watchCancelled())
	assert.False(t, first.watchCancelled())
	assert.Equal(t, second.coord, session.coordinate())
}

func TestStart_SecondStartReturnsExistingSession(t *testing.T) {
	m, directory, _, _, _ := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	initial := geo.Coordinate{Latitude: 19.43, Longitude: -99.13}
	first, err := m.StartClient(context.Background(), userID, &initial, false)
	require.NoError(t, err)
	defer first.Stop()

	second, err := m.StartClient(context.Background(), userID, &initial, false)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestEmit_PublishesAlert(t *testing.T) {
	m, directory, _, _, alerts := newTestManager(t)
	userID := uuid.New()
	expectIdentity(directory, userID)

	initial := geo.Coordinate{Latitude: 19.43, Longitude: -99.13}
	session, err := m.StartClient(context.Background(), userID, &initial, false)
	require.NoError(t, err)
	defer session.Stop()

	require.Eventually(t, func() bool {
		return alerts.count() >= 1
	}, time.Second, testInterval/2)
}
