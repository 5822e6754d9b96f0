package sandbox

import (
	"fmt"
	"os"
	"time"
)

// Entry kinds.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// Entry describes one filesystem entry at the moment of inspection.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        *int64 `json:"size,omitempty"`
	Modified    string `json:"modified"`
	Permissions string `json:"permissions"`
}

// Describe stats the entry at the given relative path.
func (s *Service) Describe(rawPath string) (Entry, error) {
	loc, err := s.resolver.Resolve(rawPath)
	if err != nil {
		return Entry{}, err
	}
	info, err := os.Stat(loc.Abs())
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, notFound(rawPath)
		}
		return Entry{}, notAccessible(rawPath, err)
	}
	return entryFromInfo(loc, info), nil
}

// describe is the per-location form used during listing, where a stat
// failure is a droppable per-entry outcome.
func describe(loc Location) (Entry, error) {
	info, err := os.Stat(loc.Abs())
	if err != nil {
		return Entry{}, notAccessible(loc.Rel(), err)
	}
	return entryFromInfo(loc, info), nil
}

func entryFromInfo(loc Location, info os.FileInfo) Entry {
	e := Entry{
		Name:     loc.Name(),
		Path:     loc.Rel(),
		Type:     TypeFile,
		Modified: info.ModTime().Format(time.RFC3339),
		// Three least-significant octal digits only, independent of
		// platform-specific mode bits.
		Permissions: fmt.Sprintf("%03o", info.Mode().Perm()),
	}
	if info.IsDir() {
		e.Type = TypeDirectory
	} else if info.Mode().IsRegular() {
		// Directories report no size, which is distinct from zero.
		size := info.Size()
		e.Size = &size
	}
	return e
}
