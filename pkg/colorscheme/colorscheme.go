// Package colorscheme persists the reader's light/dark preference. It is
// independent of content rendering: pages without a stored preference are
// rendered neutral and the client script picks a scheme before first paint.
package colorscheme

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Scheme string

const (
	Light Scheme = "light"
	Dark  Scheme = "dark"
)

// CookieName is shared with the client script, which writes the same cookie
// and localStorage key when the toggle is used.
const CookieName = "theme"

func Parse(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

func (s Scheme) Toggle() Scheme {
	if s == Dark {
		return Light
	}
	return Dark
}

func (s Scheme) String() string { return string(s) }

// FromRequest returns the stored preference, if any.
func FromRequest(r *http.Request) (Scheme, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	s, err := Parse(c.Value)
	if err != nil {
		return "", false
	}
	return s, true
}

// Set stores the preference for a year.
func Set(w http.ResponseWriter, s Scheme) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(s),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ToggleHandler flips the stored preference and redirects back to the page
// named by the `return` form value. It is the no-script fallback of the
// toggle button.
func ToggleHandler(fallback Scheme) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := FromRequest(r)
		if !ok {
			current = fallback
		}
		Set(w, current.Toggle())
		http.Redirect(w, r, returnPath(r.FormValue("return")), http.StatusSeeOther)
	})
}

// returnPath only allows local absolute paths.
func returnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

var ErrUnknownScheme = errors.New("unknown color scheme")
