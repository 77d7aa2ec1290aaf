package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys are attribute keys that are always masked regardless of
// what the value looks like.
var sensitiveKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"key":           true,
	"authorization": true,
	"token":         true,
	"access_token":  true,
	"secret":        true,
	"password":      true,
	"credential":    true,
	"credentials":   true,
	"x-api-key":     true,
}

// sensitivePatterns match values that are credentials no matter which
// key they were logged under. Video ids (11 characters) and keywords
// never match any of these.
var sensitivePatterns = []*regexp.Regexp{
	// Google API keys: "AIza" followed by 35 URL-safe characters.
	regexp.MustCompile(`^AIza[0-9A-Za-z_-]{35}$`),

	// Bearer / Basic authorization values.
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),

	// JWTs.
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// A key=... query parameter anywhere in the value, as in request URLs.
	regexp.MustCompile(`[?&]key=[^&\s]+`),
}

// MaskValue replaces sensitive values in log output.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler and masks sensitive attributes
// before they reach the underlying handler. It works with any handler
// (text, JSON) and composes with slog's grouping as usual.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler wraps handler with credential masking.
// A nil handler falls back to slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and forwards it.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a handler with the given attributes added, masked.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursing into groups.
func (h *SecureHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		maskedGroup := make([]slog.Attr, len(group))
		for i, ga := range group {
			maskedGroup[i] = h.maskAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedGroup...)}
	}

	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		if v := a.Value.String(); isSensitiveValue(v) {
			return slog.String(a.Key, maskSensitiveValue(v))
		}
	}

	return a
}

// keyParamPattern masks only the key parameter inside URLs so the rest
// of the URL stays diagnosable.
var keyParamPattern = regexp.MustCompile(`([?&]key=)[^&\s]+`)

// isSensitiveValue reports whether the value matches a credential pattern.
func isSensitiveValue(value string) bool {
	for _, p := range sensitivePatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

// maskSensitiveValue redacts the credential portion of the value.
// URL-shaped values keep everything except the key parameter; anything
// else is replaced wholesale.
func maskSensitiveValue(value string) string {
	if keyParamPattern.MatchString(value) {
		return keyParamPattern.ReplaceAllString(value, "${1}"+MaskValue)
	}
	return MaskValue
}

// NewSecureLogger returns a text-format slog.Logger writing to w with
// credential masking applied. Verbose selects Debug level, otherwise Info;
// terminal entry states are logged at Info so a default run shows every
// node outcome.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSecureHandler(textHandler))
}
