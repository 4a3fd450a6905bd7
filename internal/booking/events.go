package booking

import "github.com/durendeer/petcare/internal/domain"

// Event topics published after a successful commit. Subscribers run
// asynchronously and must never feed errors back into the write path.
const (
	TopicAppointmentCreated       = "appointment.created"
	TopicAppointmentStatusChanged = "appointment.status_changed"
)

// AppointmentEvent is the payload for both appointment topics. Email is
// resolved inside the handler transaction so subscribers need no further
// database access.
type AppointmentEvent struct {
	Appointment *domain.Appointment
	Email       string
}
