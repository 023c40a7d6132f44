package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/timeconnect/attendance-backend-go/internal/config"
	"github.com/timeconnect/attendance-backend-go/internal/domain/notification"
)

// ErrQueueFull is returned when the mail buffer is saturated. Callers treat
// it as a degraded-delivery signal, not a request failure.
var ErrQueueFull = errors.New("notification queue is full")

// Dispatcher delivers queued emails asynchronously with bounded retries.
// Delivery is at-least-once and best-effort: a message that exhausts its
// attempts is logged and dropped.
type Dispatcher struct {
	sender      notification.Sender
	queue       chan notification.Message
	maxAttempts int
	backoffBase time.Duration

	wg       sync.WaitGroup
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func NewDispatcher(sender notification.Sender, cfg config.MailQueueConfig) (*Dispatcher, error) {
	backoff, err := time.ParseDuration(cfg.BackoffBase)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		sender:      sender,
		queue:       make(chan notification.Message, cfg.BufferSize),
		maxAttempts: attempts,
		backoffBase: backoff,
		cancel:      cancel,
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}

	return d, nil
}

// Stop drains nothing: in-flight deliveries finish, queued messages that no
// worker has picked up yet are dropped.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.cancel()
		d.wg.Wait()
	})
}

// EnqueueAttendance implements notification.Dispatcher.
func (d *Dispatcher) EnqueueAttendance(ctx context.Context, email notification.AttendanceEmail) error {
	return d.enqueue(ctx, notification.Message{
		Kind:       notification.KindAttendance,
		Attendance: email,
	})
}

// EnqueuePasswordReset implements notification.Dispatcher.
func (d *Dispatcher) EnqueuePasswordReset(ctx context.Context, email notification.PasswordResetEmail) error {
	return d.enqueue(ctx, notification.Message{
		Kind:          notification.KindPasswordReset,
		PasswordReset: email,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, msg notification.Message) error {
	select {
	case d.queue <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg notification.Message) {
	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		lastErr = d.send(msg)
		if lastErr == nil {
			return
		}

		slog.Warn("email delivery attempt failed",
			"kind", string(msg.Kind),
			"attempt", attempt,
			"error", lastErr,
		)

		if attempt == d.maxAttempts {
			break
		}
		// Exponential backoff: base, 2*base, 4*base, ...
		wait := d.backoffBase << (attempt - 1)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}

	slog.Error("email delivery failed permanently",
		"kind", string(msg.Kind),
		"attempts", d.maxAttempts,
		"error", lastErr,
	)
}

func (d *Dispatcher) send(msg notification.Message) error {
	switch msg.Kind {
	case notification.KindAttendance:
		return d.sender.SendAttendanceNotification(msg.Attendance)
	case notification.KindPasswordReset:
		return d.sender.SendPasswordReset(msg.PasswordReset)
	default:
		return fmt.Errorf("unknown message kind %q", msg.Kind)
	}
}
