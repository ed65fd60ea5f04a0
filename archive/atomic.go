package archive

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/sonnes/irclog/core"
)

// writeAtomic streams write's output to a temporary file in the target
// directory and renames it over path, so readers never see a partial page.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".irclog-*.tmp")
	if err != nil {
		return &core.FileError{Op: "write", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &core.FileError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &core.FileError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &core.FileError{Op: "write", Path: path, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &core.FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
