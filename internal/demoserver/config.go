package demoserver

// Config controls the local fixture site.
type Config struct {
	// Port to listen on for `cmd/demoserver`. Handler ignores it.
	Port int

	// InitialVersion is served for every page at startup. 1 is the healthy
	// footer; pages that lack the requested version fall back to a lower one.
	InitialVersion int
}

// DefaultConfig serves healthy footers on :9999.
func DefaultConfig() Config {
	return Config{
		Port:           9999,
		InitialVersion: 1,
	}
}
