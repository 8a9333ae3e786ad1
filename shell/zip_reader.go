package shell

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/mholt/archiver"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type ZipArchiveInspector struct{}

func NewZipArchiveInspector() *ZipArchiveInspector {
	return &ZipArchiveInspector{}
}

// Inspect reads back every entry of an in-memory zip archive, reporting the
// entry names and uncompressed sizes in archive order.
func (this *ZipArchiveInspector) Inspect(archive []byte) (items []contracts.ArchiveItem, err error) {
	reader := archiver.NewZip()
	err = reader.Open(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("could not open archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	for {
		file, err := reader.Read()
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		item, err := this.inspect(file)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (this *ZipArchiveInspector) inspect(file archiver.File) (contracts.ArchiveItem, error) {
	defer func() { _ = file.Close() }()
	size, err := io.Copy(io.Discard, file)
	if err != nil {
		return contracts.ArchiveItem{}, fmt.Errorf("could not read \"%s\" from archive: %w", entryName(file), err)
	}
	return contracts.ArchiveItem{Path: entryName(file), Size: size}, nil
}

func entryName(file archiver.File) string {
	switch header := file.Header.(type) {
	case zip.FileHeader:
		return header.Name
	case *zip.FileHeader:
		return header.Name
	default:
		return file.Name()
	}
}
