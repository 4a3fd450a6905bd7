package booking

import (
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/notify"
)

// statusText maps stored status literals to the wording used in customer
// emails. Unmapped statuses fall back to the raw literal.
var statusText = map[string]string{
	domain.StatusConfirmed:  "confirmed",
	domain.StatusInProgress: "in progress",
	domain.StatusCompleted:  "completed",
	domain.StatusCancelled:  "cancelled",
}

// Notifier turns appointment events into email dispatches.
type Notifier struct {
	dispatcher *notify.Dispatcher
}

func NewNotifier(dispatcher *notify.Dispatcher) *Notifier {
	return &Notifier{dispatcher: dispatcher}
}

// Subscribe wires the notifier to the appointment topics. Handlers run
// asynchronously on the bus.
func (n *Notifier) Subscribe(bus EventBus.Bus) error {
	if err := bus.SubscribeAsync(TopicAppointmentCreated, n.onCreated, false); err != nil {
		return err
	}
	return bus.SubscribeAsync(TopicAppointmentStatusChanged, n.onStatusChanged, false)
}

func (n *Notifier) onCreated(evt AppointmentEvent) {
	n.dispatcher.Dispatch("email", evt.Email,
		"Appointment Created",
		fmt.Sprintf("Your appointment on %s was created successfully!",
			evt.Appointment.ScheduledAt.Format(time.RFC1123)))
}

func (n *Notifier) onStatusChanged(evt AppointmentEvent) {
	text, ok := statusText[evt.Appointment.Status]
	if !ok {
		text = evt.Appointment.Status
	}
	n.dispatcher.Dispatch("email", evt.Email,
		"Appointment Status Updated",
		fmt.Sprintf("Your appointment has been %s.", text))
}
