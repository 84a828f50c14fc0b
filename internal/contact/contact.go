// Package contact builds the links the page hands to the visitor's own
// apps: the prefilled mail draft, phone and WhatsApp.
package contact

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// DefaultAddress receives the contact form's drafts.
const DefaultAddress = "sreehariwsree@gmail.com"

// Form is the contact form's fields.
type Form struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

// FieldError names a required field that was left empty.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Validate applies the form's required fields.
func (f Form) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return &FieldError{Field: "name"}
	case strings.TrimSpace(f.Email) == "":
		return &FieldError{Field: "email"}
	case strings.TrimSpace(f.Message) == "":
		return &FieldError{Field: "message"}
	}
	return nil
}

// Subject is the draft's subject line.
func (f Form) Subject() string {
	return "Message from " + f.Name
}

// Body is the draft's body.
func (f Form) Body() string {
	return f.Message + "\n\nFrom: " + f.Name + "\nEmail: " + f.Email
}

// MailtoURI returns a mailto: link to address prefilled from f.
func MailtoURI(address string, f Form) (string, error) {
	if address == "" {
		return "", errors.New("no mail address configured")
	}
	if err := f.Validate(); err != nil {
		return "", err
	}
	return "mailto:" + address +
		"?subject=" + EncodeURIComponent(f.Subject()) +
		"&body=" + EncodeURIComponent(f.Body()), nil
}

// TelURI is a tel: link for phone.
func TelURI(phone string) string {
	return "tel:" + phone
}

// WhatsAppURI opens a WhatsApp chat with phone, optionally prefilled.
func WhatsAppURI(phone, text string) string {
	uri := "https://wa.me/" + phone
	if text != "" {
		uri += "?text=" + EncodeURIComponent(text)
	}
	return uri
}

// EncodeURIComponent percent-encodes every byte outside
// A-Z a-z 0-9 - _ . ! ~ * ' ( ), matching browsers' encodeURIComponent.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Status is the outcome shown above the form.
type Status int

// Form statuses.
const (
	StatusIdle Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is one page's contact form.
type State struct {
	mu     sync.Mutex
	form   Form
	status Status
}

// Form returns the current field values.
func (s *State) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Status returns the last submission outcome.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit builds the draft for f and hands it to navigate. Navigation is
// fire-and-forget: once it is issued the submission counts as a success and
// the fields are cleared, since the mail client never reports back. A
// failure keeps the fields so the visitor can try again.
func (s *State) Submit(address string, f Form, navigate func(uri string) error) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = f
	uri, err := MailtoURI(address, f)
	if err == nil {
		err = navigate(uri)
	}
	if err != nil {
		s.status = StatusError
		return s.status, errors.Wrap(err, "submit contact form")
	}
	s.status = StatusSuccess
	s.form = Form{}
	return s.status, nil
}
