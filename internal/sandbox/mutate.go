package sandbox

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// CreateDirectory creates a directory and any missing ancestors. Creating an
// already-existing directory succeeds.
func (s *Service) CreateDirectory(rawPath string) error {
	loc, err := s.resolver.Resolve(rawPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(loc.Abs(), 0o755); err != nil {
		return ioFailure(rawPath, err)
	}
	return nil
}

// Delete removes a file, or a directory and its entire contents. There is no
// recycle bin; deletion is immediate. Returns the kind of entry removed.
func (s *Service) Delete(rawPath string) (string, error) {
	loc, err := s.resolver.Resolve(rawPath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(loc.Abs())
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFound(rawPath)
		}
		return "", notAccessible(rawPath, err)
	}
	if info.IsDir() {
		if err := os.RemoveAll(loc.Abs()); err != nil {
			return "", ioFailure(rawPath, err)
		}
		return TypeDirectory, nil
	}
	if err := os.Remove(loc.Abs()); err != nil {
		return "", ioFailure(rawPath, err)
	}
	return TypeFile, nil
}

// Copy copies a file or directory tree. Directory copies merge into an
// existing destination directory. File copies create missing destination
// parents, overwrite an existing destination file, and preserve the source
// modification time; a file copied onto an existing directory lands inside
// it under the source name.
func (s *Service) Copy(srcRaw, dstRaw string) error {
	src, err := s.resolver.Resolve(srcRaw)
	if err != nil {
		return err
	}
	dst, err := s.resolver.Resolve(dstRaw)
	if err != nil {
		return err
	}

	info, err := os.Stat(src.Abs())
	if err != nil {
		if os.IsNotExist(err) {
			return notFound(srcRaw)
		}
		return notAccessible(srcRaw, err)
	}

	if info.IsDir() {
		if err := copyTree(src.Abs(), dst.Abs()); err != nil {
			return ioFailure(srcRaw, err)
		}
		return nil
	}
	if di, err := os.Stat(dst.Abs()); err == nil && di.IsDir() {
		dst = dst.child(src.Name())
	}
	if err := copyFile(src.Abs(), dst.Abs()); err != nil {
		return ioFailure(srcRaw, err)
	}
	return nil
}

// Move renames a file or directory, creating missing destination parents.
// An existing directory destination receives the source inside it under the
// source name. Within one volume the rename is atomic. Across volumes it
// degrades to copy-then-delete: if the delete step fails after a successful
// copy, both copies remain. That partial-failure window is a known
// limitation of the fallback, not hidden or rolled back.
func (s *Service) Move(srcRaw, dstRaw string) error {
	src, err := s.resolver.Resolve(srcRaw)
	if err != nil {
		return err
	}
	dst, err := s.resolver.Resolve(dstRaw)
	if err != nil {
		return err
	}

	info, err := os.Stat(src.Abs())
	if err != nil {
		if os.IsNotExist(err) {
			return notFound(srcRaw)
		}
		return notAccessible(srcRaw, err)
	}

	if di, err := os.Stat(dst.Abs()); err == nil && di.IsDir() {
		dst = dst.child(src.Name())
	}

	if err := os.MkdirAll(filepath.Dir(dst.Abs()), 0o755); err != nil {
		return ioFailure(dstRaw, err)
	}

	err = os.Rename(src.Abs(), dst.Abs())
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return ioFailure(srcRaw, err)
	}

	if info.IsDir() {
		if err := copyTree(src.Abs(), dst.Abs()); err != nil {
			return ioFailure(srcRaw, err)
		}
	} else if err := copyFile(src.Abs(), dst.Abs()); err != nil {
		return ioFailure(srcRaw, err)
	}
	if err := os.RemoveAll(src.Abs()); err != nil {
		return ioFailure(srcRaw, err)
	}
	return nil
}

// copyFile copies file bytes and the source modification time, creating
// missing destination parents and truncating an existing destination.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if fi, err := os.Stat(src); err == nil {
		_ = os.Chtimes(dst, time.Now(), fi.ModTime())
	}
	return nil
}

// copyTree copies a directory tree, merging into an existing destination.
func copyTree(srcDir, dstDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}
	for _, e := range entries {
		src := filepath.Join(srcDir, e.Name())
		dst := filepath.Join(dstDir, e.Name())
		if e.IsDir() {
			if err := copyTree(src, dst); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}
