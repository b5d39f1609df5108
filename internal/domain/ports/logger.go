package ports

// Logger é o log estruturado usado por services e handlers.
// args são pares chave/valor ("user_id", id, "error", err).
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}
