// Package filesystem provides the filesystem abstraction used by the
// parser and the command deriver. Production code uses the OS
// implementation; tests substitute an in-memory afero filesystem.
package filesystem

import (
	"io/fs"
)

// FS is the read-only filesystem surface the core needs: opening the
// spec file and answering existence/kind questions about rule targets.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}
