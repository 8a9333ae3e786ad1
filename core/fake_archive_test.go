package core

import (
	"errors"
	"fmt"
	"io"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type ArchiveItem struct {
	contracts.ArchiveHeader
	contents []byte
}

type FakeArchiveWriter struct {
	target      io.Writer
	items       []*ArchiveItem
	current     *ArchiveItem
	closed      bool
	headerError error
	writeError  error
	closedError error
}

func NewFakeArchiveWriter() *FakeArchiveWriter { return &FakeArchiveWriter{} }

func (this *FakeArchiveWriter) WriteHeader(header contracts.ArchiveHeader) error {
	if this.headerError != nil {
		return this.headerError
	}
	this.current = &ArchiveItem{ArchiveHeader: header}
	this.items = append(this.items, this.current)
	return nil
}

func (this *FakeArchiveWriter) Write(p []byte) (int, error) {
	if this.writeError != nil {
		return 0, this.writeError
	}
	this.current.contents = append(this.current.contents, p...)
	return len(p), nil
}

func (this *FakeArchiveWriter) Close() error {
	this.closed = true
	if this.target != nil {
		_, _ = fmt.Fprintf(this.target, "[%d items]", len(this.items))
	}
	return this.closedError
}

func (this *FakeArchiveWriter) Factory(target io.Writer) contracts.ArchiveWriter {
	this.target = target
	return this
}

var (
	headerErr = errors.New("header error")
	writeErr  = errors.New("write error")
	closeErr  = errors.New("close error")
	openErr   = errors.New("open error")
)
