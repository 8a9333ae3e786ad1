package contracts

import (
	"io"
	"time"
)

type PathLister interface {
	Listing() ([]FileInfo, error)
}

type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type FileInfo interface {
	Path() string
	Size() int64
	ModTime() time.Time
}

type RootPath interface {
	RootPath() string
}

type RootChecker interface {
	Exists() bool
}
