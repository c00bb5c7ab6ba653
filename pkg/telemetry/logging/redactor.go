package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Mask replaces redacted values.
const Mask = "***"

// TokensKey is the attribute key under which raw input tokens are logged.
// Attributes with this key are redacted token by token.
const TokensKey = "tokens"

// sensitiveKeys are substrings of option names whose values are masked.
var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"secret", "token", "api_key", "apikey", "api-key",
	"auth", "credential", "private_key", "private-key",
}

// Redactor masks secret values in command line tokens before they are
// logged. Tokens are classified purely by shape, without a schema.
type Redactor struct {
	keys []string
}

// NewRedactor creates a Redactor with the default sensitive option names.
func NewRedactor() *Redactor {
	return &Redactor{keys: sensitiveKeys}
}

// IsSensitive reports whether an option name looks like it carries a secret.
func (r *Redactor) IsSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, key := range r.keys {
		if strings.Contains(lower, key) {
			return true
		}
	}
	return false
}

// RedactTokens returns a copy of tokens with secret values masked:
//
//	--password=hunter2   -> --password=***
//	--token abc123       -> --token ***
//
// The input slice is not modified.
func (r *Redactor) RedactTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)

	for i := 0; i < len(out); i++ {
		tok := out[i]
		if !strings.HasPrefix(tok, "--") {
			continue
		}
		body := tok[2:]
		if name, _, ok := strings.Cut(body, "="); ok {
			if r.IsSensitive(name) {
				out[i] = "--" + name + "=" + Mask
			}
			continue
		}
		if r.IsSensitive(body) && i+1 < len(out) && !strings.HasPrefix(out[i+1], "-") {
			out[i+1] = Mask
			i++
		}
	}

	return out
}

// redactAttr masks the tokens attribute and string attributes whose key
// names a secret.
func (r *Redactor) redactAttr(a slog.Attr) slog.Attr {
	if a.Key == TokensKey {
		if tokens, ok := a.Value.Any().([]string); ok {
			return slog.Any(a.Key, r.RedactTokens(tokens))
		}
	}
	if a.Value.Kind() == slog.KindString && r.IsSensitive(a.Key) && a.Value.String() != "" {
		return slog.String(a.Key, Mask)
	}
	return a
}

// redactHandler applies a Redactor to every attribute before delegating.
type redactHandler struct {
	next     slog.Handler
	redactor *Redactor
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, rec slog.Record) error {
	clean := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.redactor.redactAttr(a))
		return true
	})
	return h.next.Handle(ctx, clean)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.redactor.redactAttr(a)
	}
	return &redactHandler{next: h.next.WithAttrs(clean), redactor: h.redactor}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{next: h.next.WithGroup(name), redactor: h.redactor}
}
