package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// requestMeta is what a client sends to make a mutating call replayable.
type requestMeta struct {
	ID string
	At time.Time
}

// parseRequestMeta reads Ax-Request-Id (lowercase UUID or 32-hex) and
// Ax-Request-At, which must fall within maxClockSkew of now.
func parseRequestMeta(h http.Header, now time.Time) (requestMeta, error) {
	id := strings.TrimSpace(h.Get(HeaderRequestID))
	if id == "" {
		return requestMeta{}, errors.New("missing Ax-Request-Id")
	}
	if !validReqID(id) {
		return requestMeta{}, errors.New("invalid Ax-Request-Id format")
	}
	at, err := parseAxRequestAt(h.Get(HeaderRequestAt))
	if err != nil {
		return requestMeta{}, err
	}
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return requestMeta{}, errors.New("Ax-Request-At too skewed")
	}
	return requestMeta{ID: id, At: at}, nil
}

func validReqID(id string) bool {
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseAxRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339
// with a zone. Naive local timestamps are rejected.
func parseAxRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing Ax-Request-At")
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("Ax-Request-At must be epoch (s/ms) or RFC3339 with timezone")
}

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }
