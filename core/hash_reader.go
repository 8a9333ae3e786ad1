package core

import (
	"encoding/hex"
	"hash"
	"io"
)

// HashReader feeds everything read from the source into the hash.
type HashReader struct {
	source io.Reader
	hash   hash.Hash
}

func NewHashReader(source io.Reader, target hash.Hash) *HashReader {
	return &HashReader{source: source, hash: target}
}

func (this *HashReader) Read(buffer []byte) (int, error) {
	count, err := this.source.Read(buffer)
	_, _ = this.hash.Write(buffer[:count])
	return count, err
}

// Checksum is the hex digest of the bytes read so far.
func (this *HashReader) Checksum() string {
	return hex.EncodeToString(this.hash.Sum(nil))
}
