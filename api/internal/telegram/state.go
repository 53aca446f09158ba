package telegram

import (
	"context"
	"sync"
	"time"

	"snap-solver/api/internal/camera"
	"snap-solver/api/internal/view"
)

// captureWindow is how long an open capture screen waits for a photo.
const captureWindow = 5 * time.Minute

// session is the per-chat UI state.
type session struct {
	mu          sync.Mutex
	router      *view.Router
	device      *photoDevice // non-nil while the capture screen is open
	detailMsgID int          // message edited when the viewed record settles
}

var sessions sync.Map // chatID -> *session

func sessionFor(chatID int64) *session {
	v, _ := sessions.LoadOrStore(chatID, &session{router: view.NewRouter()})
	return v.(*session)
}

var captureSlots sync.Map // chatID -> *photoDevice

// photoDevice adapts incoming Telegram photo messages to the capture
// device contract: Open claims the chat's single capture slot, Shoot
// blocks until the next photo arrives, Close releases the slot.
type photoDevice struct {
	chatID    int64
	frames    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

var _ camera.Device = (*photoDevice)(nil)

func newPhotoDevice(chatID int64) *photoDevice {
	return &photoDevice{
		chatID: chatID,
		frames: make(chan []byte, 1),
		done:   make(chan struct{}),
	}
}

// Open fails with camera.ErrUnavailable while another capture is active
// for the chat; once that capture closes, a retry succeeds.
func (d *photoDevice) Open(_ context.Context) error {
	if _, loaded := captureSlots.LoadOrStore(d.chatID, d); loaded {
		return camera.ErrUnavailable
	}
	return nil
}

// Shoot blocks until the user sends a photo, the device is closed, or ctx
// expires.
func (d *photoDevice) Shoot(ctx context.Context) ([]byte, error) {
	select {
	case frame := <-d.frames:
		return frame, nil
	case <-d.done:
		return nil, camera.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close releases the slot. Safe to call more than once.
func (d *photoDevice) Close() error {
	d.closeOnce.Do(func() {
		captureSlots.CompareAndDelete(d.chatID, d)
		close(d.done)
	})
	return nil
}

// pushFrame hands an incoming photo to the chat's open device, if any.
func pushFrame(chatID int64, frame []byte) bool {
	v, ok := captureSlots.Load(chatID)
	if !ok {
		return false
	}
	d := v.(*photoDevice)
	select {
	case d.frames <- frame:
		return true
	default:
		return false
	}
}
