// Package whatsapp hands orders over to the merchant through WhatsApp click
// to chat links.
package whatsapp

import (
	"errors"
	"net/url"
	"strings"
	"unicode"

	"storefront/internal/core/ports"
)

const DefaultBaseURL = "https://wa.me"

var (
	ErrPhoneIsRequired   = errors.New("merchant phone number is required")
	ErrMessageIsRequired = errors.New("hand-off message is required")
)

// Messenger builds links that open a chat with the merchant prefilled with
// the order summary. Nothing is sent by the service itself.
type Messenger struct {
	baseURL string
}

var _ ports.Messenger = Messenger{}

func NewMessenger(baseURL string) Messenger {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Messenger{baseURL: strings.TrimRight(baseURL, "/")}
}

// HandOff returns <base>/<digits>?text=<message>. Spaces are encoded as %20,
// which every WhatsApp client understands.
func (m Messenger) HandOff(phone string, text string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrPhoneIsRequired
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrMessageIsRequired
	}

	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return m.baseURL + "/" + digits + "?text=" + encoded, nil
}
