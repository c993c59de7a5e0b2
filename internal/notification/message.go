package notification

import (
	"fmt"
	"strings"
	"time"

	"dinner-scheduler/internal/model"
	"dinner-scheduler/pkg/localtime"
)

// Fixed texts sent to people opting in or out.
const (
	OptInConfirmationText = "You have successfully signed up for dinner appointment notifications. Reply STOP at any time to opt out."
	SMSOptInReplyText     = "You have successfully opted in to receive SMS notifications. Reply STOP at any time to opt out."
	SMSOptOutReplyText    = "You have successfully opted out of SMS notifications. Reply START to opt back in."
	SMSHelpText           = "To manage your SMS notifications:\n- Reply START to opt in\n- Reply STOP to opt out"
)

// NewAppointmentMessage is sent to missionaries when an appointment is booked.
func NewAppointmentMessage(f *localtime.Formatter, ev model.Event, a model.Attendee) string {
	var b strings.Builder
	b.WriteString("New dinner appointment scheduled!\n")
	fmt.Fprintf(&b, "Name: %s\n", a.Name)
	fmt.Fprintf(&b, "Email: %s\n", a.Email)
	if a.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", a.Phone)
	}
	fmt.Fprintf(&b, "Date: %s\n", f.Format(ev.StartTime))
	fmt.Fprintf(&b, "Duration: %dmin\n", ev.DurationMinutes())
	fmt.Fprintf(&b, "Address: %s", addressOrDefault(a))
	return b.String()
}

// CancellationMessage is sent to missionaries when an appointment is canceled.
func CancellationMessage(f *localtime.Formatter, name string, start time.Time) string {
	return fmt.Sprintf("Dinner appointment canceled\nName: %s\nOriginally scheduled for: %s", name, f.Format(start))
}

// InviteeConfirmationMessage is sent to the person who booked.
func InviteeConfirmationMessage(f *localtime.Formatter, ev model.Event, a model.Attendee) string {
	return fmt.Sprintf(
		"Your missionary dinner appointment has been scheduled!\nDate: %s\nDuration: %dmin\nAddress: %s\n\n"+
			"We look forward to meeting you! If you need to reschedule, please use the link in your confirmation email.",
		f.Format(ev.StartTime), ev.DurationMinutes(), addressOrDefault(a),
	)
}

func addressOrDefault(a model.Attendee) string {
	if addr := a.Address(); addr != "" {
		return addr
	}
	return model.NoAddressProvided
}
