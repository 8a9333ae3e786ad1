package contracts

import (
	"io"
	"time"
)

type ArchiveWriter interface {
	io.WriteCloser
	WriteHeader(header ArchiveHeader) error
}

type ArchiveHeader struct {
	Name    string
	Size    int64
	ModTime time.Time
}

type ArchiveItem struct {
	Path string
	Size int64
}

type ArchiveInspector interface {
	Inspect(archive []byte) ([]ArchiveItem, error)
}
