package core

import (
	"path/filepath"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type DirectoryListing interface {
	contracts.PathLister
	contracts.RootPath
}

// FindFiles returns the whitelisted files below the storage root, each
// expressed as "<relative-dir>/<name>" ("./config.yml", "sub/init.lua").
func FindFiles(storage DirectoryListing) ([]string, error) {
	paths, err := relativePaths(storage)
	if err != nil {
		return nil, err
	}
	return FilterWhitelisted(paths), nil
}

func relativePaths(storage DirectoryListing) (paths []string, err error) {
	listing, err := storage.Listing()
	if err != nil {
		return nil, err
	}
	for _, file := range listing {
		path, err := relativePath(storage.RootPath(), file.Path())
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func relativePath(root, path string) (string, error) {
	directory, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(directory) + "/" + filepath.Base(path), nil
}

// ArchiveName is the entry name of a relative path inside the archive.
func ArchiveName(relative string) string {
	return filepath.ToSlash(filepath.Clean(relative))
}
