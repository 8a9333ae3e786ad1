package shell

import (
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type ZipArchiveWriter struct {
	inner   *zip.Writer
	current io.Writer
	method  uint16
	once    sync.Once
}

// NewZipArchiveWriter writes deflated entries at the given level; level 0
// stores entries uncompressed.
func NewZipArchiveWriter(writer io.Writer, level int) contracts.ArchiveWriter {
	inner := zip.NewWriter(writer)
	if level == flate.NoCompression {
		return &ZipArchiveWriter{inner: inner, method: zip.Store}
	}
	inner.RegisterCompressor(zip.Deflate, func(target io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(target, level)
	})
	return &ZipArchiveWriter{inner: inner, method: zip.Deflate}
}

func (this *ZipArchiveWriter) WriteHeader(header contracts.ArchiveHeader) (err error) {
	this.current, err = this.inner.CreateHeader(&zip.FileHeader{
		Name:     header.Name,
		Modified: header.ModTime,
		Method:   this.method,
	})
	return err
}

func (this *ZipArchiveWriter) Write(buffer []byte) (int, error) {
	return this.current.Write(buffer)
}

func (this *ZipArchiveWriter) Close() (err error) {
	this.current = nil
	this.once.Do(func() { err = this.inner.Close() })
	return err
}
