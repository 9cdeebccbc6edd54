package jwt

import "os"

// ReadFile can be used to customize the way the
// Must/Load key helpers read files.
// Example of usage: embedded key pairs.
var ReadFile = os.ReadFile

// fileExists tries to report whether the local physical "path" exists and it's not a directory.
func fileExists(path string) bool {
	if info, err := os.Stat(path); err == nil {
		return !info.IsDir()
	}

	return false
}

var panicHandler = func(err error) {
	panic(err)
}

// BytesToString converts a slice of bytes to string.
func BytesToString(b []byte) string {
	return string(b)
}
