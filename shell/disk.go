package shell

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type DiskFileSystem struct{ root string }

func NewDiskFileSystem(root string) *DiskFileSystem {
	return &DiskFileSystem{root: filepath.Clean(root)}
}

func (this *DiskFileSystem) RootPath() string {
	return this.root
}

func (this *DiskFileSystem) Exists() bool {
	_, err := os.Stat(this.root)
	return err == nil
}

// Listing walks every regular file below the root. Symlinks to files are
// listed, symlinks to directories are not descended. A root that is missing
// or is not a directory yields an empty listing.
func (this *DiskFileSystem) Listing() (listing []contracts.FileInfo, err error) {
	root, err := os.Stat(this.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !root.IsDir() {
		return nil, nil
	}

	err = filepath.Walk(this.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode()&os.ModeSymlink == os.ModeSymlink {
			if target, err := os.Stat(path); err == nil {
				if target.IsDir() {
					return nil
				}
				info = target
			}
		}
		listing = append(listing, FileInfo{
			path: path,
			size: info.Size(),
			mod:  info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (this *DiskFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (this *DiskFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (this *DiskFileSystem) WriteFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0644)
}

////////////////////////////////////////

type FileInfo struct {
	path string
	size int64
	mod  time.Time
}

func (this FileInfo) Path() string       { return this.path }
func (this FileInfo) Size() int64        { return this.size }
func (this FileInfo) ModTime() time.Time { return this.mod }
