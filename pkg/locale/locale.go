// Package locale resolves the UI locale from the i18n_redirected cookie.
//
// Only locales listed in the Set are ever returned; anything else falls back
// to the default, so the result is always safe to use as a path segment.
package locale

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// CookieName is the cookie the UI uses to remember the chosen locale.
const CookieName = "i18n_redirected"

var (
	ErrNoLocales      = errors.New("locale: no supported locales")
	ErrInvalidLocale  = errors.New("locale: invalid locale tag")
	ErrUnknownDefault = errors.New("locale: default locale is not supported")
)

// Set is the list of supported locales and the default among them.
type Set struct {
	supported []string
	def       string
	matcher   language.Matcher
}

// NewSet validates codes (BCP 47) and returns a Set with def as fallback.
func NewSet(codes []string, def string) (*Set, error) {
	var (
		tags      []language.Tag
		supported []string
	)
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		tag, err := language.Parse(c)
		if err != nil {
			return nil, errors.Join(ErrInvalidLocale, err)
		}
		tags = append(tags, tag)
		supported = append(supported, c)
	}
	if len(supported) == 0 {
		return nil, ErrNoLocales
	}

	s := &Set{supported: supported, def: def}
	if !s.IsValid(def) {
		return nil, ErrUnknownDefault
	}
	s.matcher = language.NewMatcher(tags)
	return s, nil
}

// Default returns the fallback locale.
func (s *Set) Default() string {
	return s.def
}

// Supported returns a copy of the supported codes.
func (s *Set) Supported() []string {
	return append([]string(nil), s.supported...)
}

// IsValid reports whether code is exactly one of the supported codes.
func (s *Set) IsValid(code string) bool {
	for _, c := range s.supported {
		if c == code {
			return true
		}
	}
	return false
}

// FromRequest returns the cookie locale when supported, otherwise the default.
func (s *Set) FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil || !s.IsValid(c.Value) {
		return s.def
	}
	return c.Value
}

// Negotiate picks the best supported locale for an Accept-Language header.
// It is used for the root redirect when no cookie is present.
func (s *Set) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return s.def
	}
	_, idx, conf := s.matcher.Match(tags...)
	if conf == language.No {
		return s.def
	}
	return s.supported[idx]
}
