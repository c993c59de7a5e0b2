package consent

import "time"

// Method is how a consent change was captured.
type Method string

const (
	MethodWebForm Method = "web_form"
	MethodSMS     Method = "sms"
)

// Status is the consent state a record moves the phone number to.
type Status string

const (
	StatusOptedIn  Status = "opted_in"
	StatusOptedOut Status = "opted_out"
)

// UnknownType is stored when the missionary type is not known (SMS keywords).
const UnknownType = "unknown"

// Text is the disclosure shown next to the opt-in form. It is copied into
// every record so the log shows exactly what was agreed to.
const Text = "By signing up for SMS notifications, you consent to receive automated text messages about dinner appointments from our system. Message frequency varies based on appointment scheduling. Message & data rates may apply. Reply STOP at any time to opt out. This is not a condition of service."

// Record is one append-only consent log entry.
type Record struct {
	ID             string    `json:"id"`
	PhoneNumber    string    `json:"phoneNumber"`
	MissionaryType string    `json:"missionaryType"`
	Timestamp      time.Time `json:"timestamp"`
	ConsentText    string    `json:"consentText"`
	IPAddress      string    `json:"ipAddress"`
	Method         Method    `json:"method"`
	Status         Status    `json:"status"`
}

// AppendInput describes a consent change to log. ID, Timestamp and
// ConsentText are filled in by the repository.
type AppendInput struct {
	PhoneNumber    string
	MissionaryType string
	IPAddress      string
	Method         Method
	Status         Status
}
