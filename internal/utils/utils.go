package utils

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugRegexp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func ValidateEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

// ValidateUUID accepts only the canonical 36 character form.
func ValidateUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes the LIKE wildcards in s so it matches literally under
// Postgres' default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func ValidateSlug(slug string) bool {
	return slugRegexp.MatchString(slug)
}

// SplitIDs parses a comma separated id list. An empty string yields an
// empty list and blank entries are dropped.
func SplitIDs(list string) []string {
	ids := []string{}
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
