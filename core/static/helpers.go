package static

import (
	"io/fs"
	"net/http"
	"strings"
)

// neuteredFileSystem wraps http.FileSystem to disable directory listing.
// Directories are only served when they contain an index.html file.
type neuteredFileSystem struct {
	fs http.FileSystem
}

// Open implements http.FileSystem.Open with directory listing disabled.
func (nfs neuteredFileSystem) Open(path string) (http.File, error) {
	f, err := nfs.fs.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if s.IsDir() {
		index := strings.TrimSuffix(path, "/") + "/index.html"
		idx, err := nfs.fs.Open(index)
		if err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
		_ = idx.Close()
	}

	return f, nil
}
