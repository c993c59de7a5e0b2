package model

import (
	"strings"
	"time"
)

// EventStatus is the provider-side state of a scheduled event.
type EventStatus string

const (
	EventStatusActive   EventStatus = "active"
	EventStatusCanceled EventStatus = "canceled"
)

// NoAddressProvided is used when an attendee gave no address answer.
const NoAddressProvided = "No address provided"

// Event is a scheduled (or canceled) appointment fetched from the scheduling provider.
// ID is the provider URI and is stable across queries.
type Event struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Status    EventStatus
}

// DurationMinutes returns the event length rounded to whole minutes.
func (e Event) DurationMinutes() int {
	return int(e.EndTime.Sub(e.StartTime).Round(time.Minute) / time.Minute)
}

// QuestionAnswer is one free-text answer from the booking form.
type QuestionAnswer struct {
	Question string
	Answer   string
}

// Attendee is the person who booked an event.
type Attendee struct {
	URI      string
	Name     string
	Email    string
	Phone    string // optional, E.164 when present
	Answers  []QuestionAnswer
	Canceled bool
}

// Address returns the first answer whose question mentions "address"
// (case-insensitive), or "" when there is none.
func (a Attendee) Address() string {
	for _, qa := range a.Answers {
		if strings.Contains(strings.ToLower(qa.Question), "address") {
			return qa.Answer
		}
	}
	return ""
}
