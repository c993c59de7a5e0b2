// Package recipient parses and maintains the configured notification recipients.
//
// The directory is a single comma-separated string of phone:category:optedIn
// triples, e.g. "+15551234567:Elders:true,+15557654321:Sisters:false".
package recipient

import (
	"errors"
	"strings"
	"sync"

	"dinner-scheduler/internal/model"
)

// ErrInvalidPhone is returned when an update names an empty phone number.
var ErrInvalidPhone = errors.New("invalid phone number")

const (
	entrySep = ","
	fieldSep = ":"
)

// Parse turns the directory string into recipients, in directory order.
// Entries with an empty phone are dropped. A missing category yields "" and a
// missing or non-"true" opt-in flag yields false.
func Parse(config string) []model.Recipient {
	var out []model.Recipient
	for _, entry := range strings.Split(config, entrySep) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		// Phone numbers never contain ':' so a plain split is enough.
		fields := strings.SplitN(entry, fieldSep, 3)
		phone := strings.TrimSpace(fields[0])
		if phone == "" {
			continue
		}

		r := model.Recipient{Phone: phone}
		if len(fields) > 1 {
			r.Category = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			r.OptedIn = strings.EqualFold(strings.TrimSpace(fields[2]), "true")
		}
		out = append(out, r)
	}
	return out
}

// Format renders recipients back into the directory string.
func Format(recipients []model.Recipient) string {
	parts := make([]string, 0, len(recipients))
	for _, r := range recipients {
		flag := "false"
		if r.OptedIn {
			flag = "true"
		}
		parts = append(parts, r.Phone+fieldSep+r.Category+fieldSep+flag)
	}
	return strings.Join(parts, entrySep)
}

// Directory owns the raw directory string. Every read re-parses it so opt-in
// changes are visible to the very next dispatch.
type Directory struct {
	mu  sync.RWMutex
	raw string
}

// NewDirectory creates a Directory from the configured string.
func NewDirectory(raw string) *Directory {
	return &Directory{raw: raw}
}

// Recipients returns every parsed entry.
func (d *Directory) Recipients() []model.Recipient {
	d.mu.RLock()
	raw := d.raw
	d.mu.RUnlock()
	return Parse(raw)
}

// OptedIn returns the phones of opted-in entries, in directory order.
func (d *Directory) OptedIn() []string {
	var phones []string
	for _, r := range d.Recipients() {
		if r.OptedIn {
			phones = append(phones, r.Phone)
		}
	}
	return phones
}

// Lookup returns the entry for phone, if any.
func (d *Directory) Lookup(phone string) (model.Recipient, bool) {
	for _, r := range d.Recipients() {
		if r.Phone == phone {
			return r, true
		}
	}
	return model.Recipient{}, false
}

// SetOptIn rewrites the entry for phone, appending one when absent. An empty
// category keeps the existing one.
func (d *Directory) SetOptIn(phone, category string, optedIn bool) (model.Recipient, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return model.Recipient{}, ErrInvalidPhone
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	recipients := Parse(d.raw)
	for i := range recipients {
		if recipients[i].Phone != phone {
			continue
		}
		if category != "" {
			recipients[i].Category = category
		}
		recipients[i].OptedIn = optedIn
		d.raw = Format(recipients)
		return recipients[i], nil
	}

	r := model.Recipient{Phone: phone, Category: category, OptedIn: optedIn}
	d.raw = Format(append(recipients, r))
	return r, nil
}

// Raw returns the current directory string.
func (d *Directory) Raw() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.raw
}
