package optin

import "dinner-scheduler/internal/model"

// DefaultValidTypes are the missionary teams accepted by the opt-in form.
var DefaultValidTypes = []string{"Elders", "Sisters", "Taylor McKendrick"}

// Inbound SMS keywords.
const (
	KeywordStart = "start"
	KeywordStop  = "stop"
)

type OptInInput struct {
	PhoneNumber string
	Type        string
	IPAddress   string
}

type OptInOutput struct {
	Recipient        model.Recipient
	ConfirmationSent bool
}

type KeywordInput struct {
	From string
	Body string
}

// KeywordOutput carries the text to reply with. Changed is set when the
// keyword toggled the sender's opt-in flag.
type KeywordOutput struct {
	Reply   string
	Changed bool
	OptedIn bool
}
