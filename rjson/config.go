package rjson

import flag "github.com/spf13/pflag"

// Config holds the decoder limits. The zero Config imposes none.
type Config struct {
	// MaxDepth bounds how deeply lists and objects may nest. 0 is unbounded.
	MaxDepth int
}

// RegisterFlags adds the decoder flags to the given FlagSet.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("", f)
}

// RegisterFlagsWithPrefix adds the decoder flags to the given FlagSet with
// every flag name prefixed by prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.MaxDepth, prefix+"max-depth", 1000, "maximum nesting depth of lists and objects; 0 disables the limit")
}
