package sos

import (
	"context"
	"errors"
	"sync"

	"github.com/vigia-app/vigia-backend/pkg/e"
	"github.com/vigia-app/vigia-backend/pkg/geo"
)

// ErrAudioDisabled is returned by a client feed whose user declined audio
// capture. The beacon treats it like any other capture failure: non-fatal.
var ErrAudioDisabled = errors.New("audio capture disabled by client")

// CancelFunc tears down a location watch registration.
type CancelFunc func()

// LocationSource delivers device location fixes to an SOS session.
type LocationSource interface {
	// GetOnce returns a single fix. Failure means the session must not arm.
	GetOnce(ctx context.Context) (geo.Coordinate, error)
	// Watch registers a callback invoked on every new fix until cancelled.
	Watch(fn func(geo.Coordinate)) (CancelFunc, error)
}

// AudioCapture delivers recorded audio chunks to an SOS session.
type AudioCapture interface {
	Open() error
	OnData(fn func(chunk []byte))
	Close() error
}

// ClientFeed implements LocationSource and AudioCapture for the HTTP
// rendering of the beacon: the mobile client pushes fixes and audio chunks
// through the API and the feed forwards them into the session callbacks.
type ClientFeed struct {
	mu           sync.Mutex
	latest       *geo.Coordinate
	onFix        func(geo.Coordinate)
	onChunk      func([]byte)
	audioEnabled bool
	audioOpen    bool
}

// NewClientFeed builds a feed primed with the coordinate from the start
// request. A nil initial coordinate makes GetOnce fail, which keeps the
// no-partial-arming rule: no fix, no session.
func NewClientFeed(initial *geo.Coordinate, audioEnabled bool) *ClientFeed {
	return &ClientFeed{
		latest:       initial,
		audioEnabled: audioEnabled,
	}
}

func (f *ClientFeed) GetOnce(ctx context.Context) (geo.Coordinate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return geo.Coordinate{}, e.ErrLocationUnavailable
	}
	return *f.latest, nil
}

func (f *ClientFeed) Watch(fn func(geo.Coordinate)) (CancelFunc, error) {
	f.mu.Lock()
	f.onFix = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.onFix = nil
		f.mu.Unlock()
	}, nil
}

// PushLocation records a fix pushed by the client and forwards it to the
// session watch callback, if any.
func (f *ClientFeed) PushLocation(c geo.Coordinate) {
	f.mu.Lock()
	f.latest = &c
	fn := f.onFix
	f.mu.Unlock()
	if fn != nil {
		fn(c)
	}
}

func (f *ClientFeed) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.audioEnabled {
		return ErrAudioDisabled
	}
	f.audioOpen = true
	return nil
}

func (f *ClientFeed) OnData(fn func(chunk []byte)) {
	f.mu.Lock()
	f.onChunk = fn
	f.mu.Unlock()
}

// PushAudio forwards an audio chunk pushed by the client. Chunks arriving
// while capture is closed are dropped.
func (f *ClientFeed) PushAudio(chunk []byte) {
	f.mu.Lock()
	fn := f.onChunk
	open := f.audioOpen
	f.mu.Unlock()
	if open && fn != nil {
		fn(chunk)
	}
}

func (f *ClientFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audioOpen = false
	f.onChunk = nil
	return nil
}
