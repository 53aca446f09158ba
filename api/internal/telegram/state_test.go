package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"snap-solver/api/internal/camera"
)

func TestPhotoDeviceSingleSlotPerChat(t *testing.T) {
	ctx := context.Background()
	const chat = int64(1001)

	first := newPhotoDevice(chat)
	if err := first.Open(ctx); err != nil {
		t.Fatalf("first open: %v", err)
	}

	second := newPhotoDevice(chat)
	if err := second.Open(ctx); !errors.Is(err, camera.ErrUnavailable) {
		t.Fatalf("second open: got %v, want ErrUnavailable", err)
	}

	// The condition is retryable: after the holder closes, open succeeds.
	_ = first.Close()
	if err := second.Open(ctx); err != nil {
		t.Fatalf("open after close: %v", err)
	}
	_ = second.Close()
}

func TestPhotoDeviceShootReceivesFrame(t *testing.T) {
	ctx := context.Background()
	const chat = int64(1002)

	dev := newPhotoDevice(chat)
	if err := dev.Open(ctx); err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	want := []byte{0xFF, 0xD8, 0x01}
	if !pushFrame(chat, want) {
		t.Fatal("pushFrame found no open device")
	}

	got, err := dev.Shoot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Fatalf("frame = %v, want %v", got, want)
	}
}

func TestPhotoDeviceShootAfterClose(t *testing.T) {
	ctx := context.Background()
	dev := newPhotoDevice(1003)
	if err := dev.Open(ctx); err != nil {
		t.Fatal(err)
	}
	_ = dev.Close()
	_ = dev.Close() // closing twice must be safe

	if _, err := dev.Shoot(ctx); !errors.Is(err, camera.ErrClosed) {
		t.Fatalf("got %v, want ErrClosed", err)
	}
}

func TestPhotoDeviceShootHonorsContext(t *testing.T) {
	dev := newPhotoDevice(1004)
	if err := dev.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := dev.Shoot(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want deadline exceeded", err)
	}
}

func TestPushFrameWithoutOpenDevice(t *testing.T) {
	if pushFrame(1005, []byte{1}) {
		t.Fatal("pushFrame must report false when no capture is active")
	}
}
