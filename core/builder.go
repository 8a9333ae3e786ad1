package core

import (
	"bytes"
	"fmt"
	"io"

	"github.com/smartystreets/logging"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type ArchiveBuilderFileSystem interface {
	contracts.PathLister
	contracts.FileOpener
	contracts.RootPath
	contracts.RootChecker
}

type ArchiveFactory func(io.Writer) contracts.ArchiveWriter

type ArchiveBuilder struct {
	logger     *logging.Logger
	storage    ArchiveBuilderFileSystem
	newArchive ArchiveFactory
	contents   []contracts.ArchiveItem
}

func NewArchiveBuilder(storage ArchiveBuilderFileSystem, newArchive ArchiveFactory) *ArchiveBuilder {
	return &ArchiveBuilder{storage: storage, newArchive: newArchive}
}

// Build re-walks the root and archives every file whose relative path ends
// with one of the given (already discovered) paths. It returns a nil archive
// when the root is missing or nothing matched.
func (this *ArchiveBuilder) Build(files []string) ([]byte, error) {
	this.contents = nil

	if !this.storage.Exists() {
		return nil, nil
	}
	matches, err := this.match(files)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	buffer := new(bytes.Buffer)
	archive := this.newArchive(buffer)
	for _, match := range matches {
		err = this.add(archive, match)
		if err != nil {
			_ = archive.Close()
			return nil, err
		}
	}
	err = archive.Close()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (this *ArchiveBuilder) Contents() []contracts.ArchiveItem {
	return this.contents
}

func (this *ArchiveBuilder) match(files []string) (matches []archiveSource, err error) {
	listing, err := this.storage.Listing()
	if err != nil {
		return nil, err
	}
	for _, file := range listing {
		relative, err := relativePath(this.storage.RootPath(), file.Path())
		if err != nil {
			return nil, err
		}
		if endsWithAny(relative, files) {
			matches = append(matches, archiveSource{FileInfo: file, relative: relative})
		}
	}
	return matches, nil
}

func (this *ArchiveBuilder) add(archive contracts.ArchiveWriter, source archiveSource) error {
	header := contracts.ArchiveHeader{
		Name:    ArchiveName(source.relative),
		Size:    source.Size(),
		ModTime: source.ModTime(),
	}
	this.logger.Printf("Adding \"%s\" to archive.", header.Name)

	err := archive.WriteHeader(header)
	if err != nil {
		return err
	}
	reader, err := this.storage.Open(source.Path())
	if err != nil {
		return err
	}
	defer closeResource(reader)

	written, err := io.Copy(archive, reader)
	if err != nil {
		return fmt.Errorf("could not archive \"%s\": %w", source.Path(), err)
	}
	this.contents = append(this.contents, contracts.ArchiveItem{Path: header.Name, Size: written})
	return nil
}

func closeResource(closer io.Closer) {
	_ = closer.Close()
}

type archiveSource struct {
	contracts.FileInfo
	relative string
}
