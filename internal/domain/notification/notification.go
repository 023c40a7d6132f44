package notification

import "context"

type Kind string

const (
	KindAttendance    Kind = "attendance-notification"
	KindPasswordReset Kind = "password-reset"
)

// AttendanceEmail carries the fields the attendance notification template renders.
type AttendanceEmail struct {
	EmployeeEmail string
	EmployeeName  string
	Date          string
	ClockIn       string
	ClockOut      string
	ActiveHours   string
	Status        string
}

// PasswordResetEmail carries the raw reset token. The token is only ever
// delivered out-of-band by mail, never in an HTTP response.
type PasswordResetEmail struct {
	EmployeeEmail string
	EmployeeName  string
	ResetToken    string
	ExpiresAt     string
}

// Message is a single queued mail job.
type Message struct {
	Kind          Kind
	Attendance    AttendanceEmail
	PasswordReset PasswordResetEmail
}

// Dispatcher queues mail jobs for asynchronous, at-least-once delivery.
// Enqueue failures are reported to the caller but must never abort the
// business operation that requested the notification.
type Dispatcher interface {
	EnqueueAttendance(ctx context.Context, email AttendanceEmail) error
	EnqueuePasswordReset(ctx context.Context, email PasswordResetEmail) error
}

// Sender performs the actual delivery of one message.
type Sender interface {
	SendAttendanceNotification(email AttendanceEmail) error
	SendPasswordReset(email PasswordResetEmail) error
}
