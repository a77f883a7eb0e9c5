package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field aliases, in resolution order. The first alias present in a payload
// wins; the rest of the group is discarded so that a normalized record only
// carries the canonical name.
var (
	wrapperKeys = []string{"user_data", "user", "data"}

	userIDAliases          = []string{fieldUserID, "id", "userId", "uid", "sub"}
	emailAliases           = []string{fieldEmail, "correo"}
	accountTypeAliases     = []string{fieldAccountType, "role", "account_type", "accountType"}
	emailVerifiedAliases   = []string{fieldEmailVerified, "emailVerified", "email_verified"}
	profileCompleteAliases = []string{fieldProfileComplete, "completed_onboarding", "profileComplete", "profile_complete"}
	identityTypeAliases    = []string{fieldIdentityType, "TipoIdentidad", "identity_type", "identityType"}
	displayNameAliases     = []string{fieldDisplayName, "name", "display_name", "displayName"}
	photoAliases           = []string{fieldProfilePhotoURL, "profile_photo_url", "profilePhotoUrl", "avatar"}

	aliasGroups = [][]string{
		userIDAliases, emailAliases, accountTypeAliases, emailVerifiedAliases,
		profileCompleteAliases, identityTypeAliases, displayNameAliases, photoAliases,
	}
)

// ParsePayload decodes b as a JSON object. Numbers are kept as json.Number
// so that values passed through untouched survive a round trip exactly.
func ParsePayload(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedPayload)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedPayload)
	}
	return m, nil
}

// Normalize maps a backend payload onto a Session. It never fails on an
// unexpected type: unknown or unparseable values fall back to their defaults
// and stay in Extra. The only hard requirement is a non-blank email.
func Normalize(raw map[string]any) (Session, error) {
	// The envelope's own keys, such as token and message, stay behind with
	// the wrapper. A flat payload is the record and is kept whole.
	record := unwrap(raw)

	rest := make(map[string]any, len(record))
	for k, v := range record {
		rest[k] = v
	}

	s := Session{
		UserID:          toUserID(take(rest, userIDAliases, isID)),
		Email:           strings.TrimSpace(toString(take(rest, emailAliases, isText))),
		AccountType:     toAccountType(take(rest, accountTypeAliases, isString)),
		EmailVerified:   truthy(take(rest, emailVerifiedAliases, isFlag)),
		ProfileComplete: truthy(take(rest, profileCompleteAliases, isFlag)),
		IdentityType:    toIdentityType(take(rest, identityTypeAliases, isString)),
		DisplayName:     toString(take(rest, displayNameAliases, isText)),
		ProfilePhotoURL: toString(take(rest, photoAliases, isText)),
	}
	if len(rest) > 0 {
		s.Extra = rest
	}

	if s.Email == "" {
		return Session{}, fmt.Errorf("%w: missing email", ErrInvalidSession)
	}
	return s, nil
}

// unwrap returns the nested user record of a response envelope. A payload
// that already carries an email at the top level is a record itself.
func unwrap(raw map[string]any) map[string]any {
	for _, k := range emailAliases {
		if _, ok := raw[k]; ok {
			return raw
		}
	}
	for _, k := range wrapperKeys {
		if inner, ok := raw[k].(map[string]any); ok {
			return inner
		}
	}
	return raw
}

// take returns the first readable alias value in m. Blank and readable
// aliases are removed from m; a value readable cannot interpret stays in m
// unless it sits under the canonical name, which the session field owns.
func take(m map[string]any, aliases []string, readable func(any) bool) any {
	var found any
	for i, k := range aliases {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch {
		case blank(v):
			delete(m, k)
		case readable(v):
			delete(m, k)
			if found == nil {
				found = v
			}
		case i == 0:
			delete(m, k)
		}
	}
	return found
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	str, ok := v.(string)
	return ok && strings.TrimSpace(str) == ""
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isText(v any) bool {
	switch v.(type) {
	case string, json.Number:
		return true
	}
	return false
}

func isID(v any) bool {
	switch v.(type) {
	case string, json.Number, float64, int, int64, int32:
		return true
	}
	return false
}

func isFlag(v any) bool {
	switch v.(type) {
	case bool, string, json.Number, float64, int, int64:
		return true
	}
	return false
}

// aliasGroup returns the alias group key belongs to, if any.
func aliasGroup(key string) []string {
	for _, g := range aliasGroups {
		for _, k := range g {
			if k == key {
				return g
			}
		}
	}
	return nil
}

func toUserID(v any) int64 {
	var id int64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			id = i
		} else if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			id = int64(f)
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < math.MaxInt64 {
			id = int64(n)
		}
	case int:
		id = int64(n)
	case int64:
		id = n
	case int32:
		id = int64(n)
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			id = i
		}
	}
	if id < 0 {
		return 0
	}
	return id
}

func toAccountType(v any) AccountType {
	str, _ := v.(string)
	switch str {
	case "empleador", "employer":
		return Employer
	default:
		return Student
	}
}

func toIdentityType(v any) IdentityType {
	str, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "persona", "person":
		return IdentityPerson
	case "empresa", "company":
		return IdentityCompany
	default:
		return IdentityNone
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case float64:
		return b != 0
	case int:
		return b != 0
	case int64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "si", "sí":
			return true
		}
	}
	return false
}

// Backfill returns the user record of raw with every field it lacks taken
// from fallback, such as the claims of the token the record came with.
// Neither argument is modified.
func Backfill(raw, fallback map[string]any) map[string]any {
	src := unwrap(raw)
	record := make(map[string]any, len(src))
	for k, v := range src {
		record[k] = v
	}
	for _, g := range aliasGroups {
		if present(record, g) {
			continue
		}
		for _, k := range g {
			if v, ok := fallback[k]; ok && v != nil {
				record[k] = v
				break
			}
		}
	}
	return record
}

func present(m map[string]any, aliases []string) bool {
	for _, k := range aliases {
		v, ok := m[k]
		if ok && !blank(v) {
			return true
		}
	}
	return false
}
