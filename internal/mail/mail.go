// Package mail builds supplier e-mail drafts as mailto: links.
package mail

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// ErrNoRecipient is returned when the draft has no address.
var ErrNoRecipient = errors.New("no recipient address")

// MailtoURL returns a mailto: link addressed to `to` with the given subject.
func MailtoURL(to, subject string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return "", ErrNoRecipient
	}

	u := url.URL{Scheme: "mailto", Opaque: to}
	if subject != "" {
		// mailto wants %20, not '+', for spaces.
		u.RawQuery = "subject=" + strings.ReplaceAll(url.QueryEscape(subject), "+", "%20")
	}
	return u.String(), nil
}

// Composer hands drafts to whatever opens mail on this platform. Here that
// is writing the mailto: link to W; Last keeps the most recent link.
type Composer struct {
	W    io.Writer
	Last string
}

// Compose builds the draft link and writes it to W, if set.
func (c *Composer) Compose(to, subject string) error {
	link, err := MailtoURL(to, subject)
	if err != nil {
		return err
	}
	c.Last = link
	if c.W != nil {
		if _, err := fmt.Fprintln(c.W, link); err != nil {
			return fmt.Errorf("writing mail draft: %w", err)
		}
	}
	return nil
}
