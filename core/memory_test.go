package core

import (
	"bytes"
	"io"
	"os"
	"sort"
	"time"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type inMemoryFileSystem struct {
	fileSystem  map[string]*file
	Root        string
	missing     bool
	errListing  error
	errOpenFile map[string]error
	written     map[string][]byte
}

func newInMemoryFileSystem() *inMemoryFileSystem {
	return &inMemoryFileSystem{
		fileSystem:  make(map[string]*file),
		errOpenFile: make(map[string]error),
		written:     make(map[string][]byte),
	}
}

func (this *inMemoryFileSystem) Listing() (files []contracts.FileInfo, err error) {
	if this.errListing != nil {
		return nil, this.errListing
	}
	if this.missing {
		return nil, nil
	}
	for _, file := range this.fileSystem {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path() < files[j].Path() })
	return files, nil
}

func (this *inMemoryFileSystem) Open(path string) (io.ReadCloser, error) {
	if err := this.errOpenFile[path]; err != nil {
		return nil, err
	}
	target, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(target.contents)), nil
}

func (this *inMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	target, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return target.contents, nil
}

func (this *inMemoryFileSystem) WriteFile(path string, content []byte) error {
	this.written[path] = content
	return nil
}

func (this *inMemoryFileSystem) Exists() bool {
	return !this.missing
}

func (this *inMemoryFileSystem) AddFile(path string, content []byte) {
	this.fileSystem[path] = &file{
		path:     path,
		contents: content,
		mod:      InMemoryModTime,
	}
}

func (this *inMemoryFileSystem) RootPath() string {
	return this.Root
}

/////////////////////////////////////////////////

type file struct {
	path     string
	contents []byte
	mod      time.Time
}

var InMemoryModTime = time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)

func (this *file) ModTime() time.Time { return this.mod }
func (this *file) Path() string       { return this.path }
func (this *file) Size() int64        { return int64(len(this.contents)) }
