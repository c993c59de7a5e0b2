package http

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"dinner-scheduler/internal/appointment"
)

const icsProductID = "-//dinner-scheduler//EN"

// encodeCalendar renders appointments as an iCalendar feed.
func (h *handler) encodeCalendar(items []appointment.Appointment, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)

	for _, a := range items {
		cal.Children = append(cal.Children, toVEvent(a, stamp))
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func toVEvent(a appointment.Appointment, stamp time.Time) *ical.Component {
	end := a.EndTime
	if !end.After(a.StartTime) {
		end = a.StartTime.Add(time.Hour)
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, a.EventID)
	ve.Props.SetText(ical.PropSummary, "Dinner with "+a.InviteeName)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, a.StartTime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())

	if a.Address != "" {
		ve.Props.SetText(ical.PropLocation, a.Address)
	}

	var desc []string
	if a.Email != "" {
		desc = append(desc, "Email: "+a.Email)
	}
	if a.PhoneNumber != "" {
		desc = append(desc, "Phone: "+a.PhoneNumber)
	}
	if len(desc) > 0 {
		ve.Props.SetText(ical.PropDescription, strings.Join(desc, "\n"))
	}
	return ve
}
