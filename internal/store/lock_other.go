//go:build !unix

package store

import "os"

// No advisory file locking on this platform; the lock file is only created.
func lockFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
}

func unlockFile(f *os.File) error {
	return f.Close()
}
