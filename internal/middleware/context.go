package middleware

import "context"

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyLang     ctxKey = "lang"
	ctxKeyLocaleFB ctxKey = "locale_fallback"
)

// WithLang stores the resolved language in context
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// LangFromContext returns the resolved language, if any
func LangFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyLang).(string)
	return v, ok
}
