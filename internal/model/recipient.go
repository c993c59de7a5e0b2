package model

// Recipient is one entry of the Recipient Directory.
type Recipient struct {
	Phone    string // E.164
	Category string // free-form team label, e.g. "Elders"
	OptedIn  bool
}
