package service

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

var (
	ErrInvalidSlug      = errors.New("slug may only contain letters, digits, hyphens and underscores")
	ErrInvalidUsername  = errors.New("username contains invalid characters")
	ErrReservedUsername = errors.New("username \"me\" is reserved")
	ErrYearInFuture     = errors.New("year cannot be greater than the current year")
)

// ValidateSlug checks the URL identifier charset shared by categories and genres.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// ValidateUsername checks the username charset and rejects the reserved "me"
// (case-insensitive), which would collide with the /users/me route.
func ValidateUsername(username string) error {
	if strings.EqualFold(username, "me") {
		return ErrReservedUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateYear rejects release years later than the current calendar year.
func ValidateYear(year int) error {
	if year > time.Now().Year() {
		return ErrYearInFuture
	}
	return nil
}
