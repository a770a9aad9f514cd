// Package csrf issues masked CSRF tokens bound to a cookie secret and rejects
// unsafe requests that do not echo a matching token.
package csrf

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/JaimeStill/app-host/pkg/handlers"
)

const secretLen = 32

var (
	// ErrTokenMissing indicates an unsafe request carried neither the header nor the form field.
	ErrTokenMissing = errors.New("csrf token missing")

	// ErrTokenMismatch indicates the token does not unmask to the cookie secret.
	ErrTokenMismatch = errors.New("csrf token incorrect")

	// ErrCookieMissing indicates the request has no valid secret cookie.
	ErrCookieMissing = errors.New("csrf cookie not set")
)

// Issuer hands out tokens and guards unsafe requests.
type Issuer interface {
	// Token returns a fresh masked token for the request's cookie secret,
	// setting the cookie when the request has none.
	Token(w http.ResponseWriter, r *http.Request) string
	Protect() func(http.Handler) http.Handler
}

type issuer struct {
	cfg    *Config
	logger *slog.Logger
}

// New creates an Issuer. cfg must already be finalized.
func New(cfg *Config, logger *slog.Logger) Issuer {
	return &issuer{
		cfg:    cfg,
		logger: logger.With("system", "csrf"),
	}
}

func (i *issuer) Token(w http.ResponseWriter, r *http.Request) string {
	secret, ok := i.secret(r)
	if !ok {
		secret = random(secretLen)
		http.SetCookie(w, &http.Cookie{
			Name:     i.cfg.CookieName,
			Value:    hex.EncodeToString(secret),
			Path:     "/",
			MaxAge:   i.cfg.CookieMaxAge,
			Secure:   i.cfg.Secure,
			SameSite: i.cfg.SameSiteMode(),
		})
	}
	w.Header().Add("Vary", "Cookie")
	return mask(secret)
}

func (i *issuer) Protect() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !i.cfg.Enforced() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if safe(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if err := i.check(r); err != nil {
				status := http.StatusForbidden
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				handlers.RespondError(w, i.logger, status, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (i *issuer) check(r *http.Request) error {
	secret, ok := i.secret(r)
	if !ok {
		return ErrCookieMissing
	}

	token := r.Header.Get(i.cfg.HeaderName)
	if token == "" {
		var err error
		if token, err = i.formToken(r); err != nil {
			return err
		}
	}
	if token == "" {
		return ErrTokenMissing
	}

	if !Verify(token, secret) {
		return ErrTokenMismatch
	}
	return nil
}

// formToken reads the token from a form body. The body is buffered and
// restored so the next handler receives it unread.
func (i *issuer) formToken(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	media, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if media != "application/x-www-form-urlencoded" && media != "multipart/form-data" {
		return "", nil
	}

	buf, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("read form: %w", err)
	}

	parsed := r.Clone(r.Context())
	parsed.Body = io.NopCloser(bytes.NewReader(buf))
	return parsed.PostFormValue(i.cfg.FormField), nil
}

func (i *issuer) secret(r *http.Request) ([]byte, bool) {
	c, err := r.Cookie(i.cfg.CookieName)
	if err != nil {
		return nil, false
	}
	secret, err := hex.DecodeString(c.Value)
	if err != nil || len(secret) != secretLen {
		return nil, false
	}
	return secret, true
}

// Verify reports whether token unmasks to secret.
func Verify(token string, secret []byte) bool {
	raw, err := hex.DecodeString(token)
	if err != nil || len(raw) != 2*len(secret) {
		return false
	}
	salt, masked := raw[:len(secret)], raw[len(secret):]
	plain := make([]byte, len(secret))
	for j := range plain {
		plain[j] = masked[j] ^ salt[j]
	}
	return subtle.ConstantTimeCompare(plain, secret) == 1
}

func mask(secret []byte) string {
	salt := random(len(secret))
	out := make([]byte, 2*len(secret))
	copy(out, salt)
	for j, b := range secret {
		out[len(secret)+j] = b ^ salt[j]
	}
	return hex.EncodeToString(out)
}

func random(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

func safe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
