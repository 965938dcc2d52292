package config

import (
	"os"
	"regexp"
)

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv replaces ${VAR} references with environment values. Any other
// use of $ is kept verbatim, so values like passwords survive untouched.
// Unset variables expand to "".
func ExpandEnv(data []byte) []byte {
	return envRefPattern.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := envRefPattern.FindSubmatch(ref)[1]
		return []byte(os.Getenv(string(name)))
	})
}
