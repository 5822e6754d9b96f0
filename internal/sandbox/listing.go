package sandbox

import (
	"os"

	"go.uber.org/zap"
)

// Listing is a directory's immediate children, sorted by name. The ordering
// is the byte order of os.ReadDir, not locale-aware collation.
type Listing struct {
	Path  string  `json:"path"`
	Items []Entry `json:"items"`
}

// List enumerates the immediate children of a directory. A child whose stat
// fails is dropped from the result rather than failing the whole listing;
// one unreadable entry should not deny visibility into the rest.
func (s *Service) List(rawPath string) (Listing, error) {
	loc, err := s.resolver.Resolve(rawPath)
	if err != nil {
		return Listing{}, err
	}

	info, err := os.Stat(loc.Abs())
	if err != nil {
		if os.IsNotExist(err) {
			return Listing{}, notFound(rawPath)
		}
		return Listing{}, notAccessible(rawPath, err)
	}
	if !info.IsDir() {
		return Listing{}, notADirectory(rawPath)
	}

	children, err := os.ReadDir(loc.Abs())
	if err != nil {
		return Listing{}, ioFailure(rawPath, err)
	}

	items := make([]Entry, 0, len(children))
	for _, child := range children {
		entry, err := describe(loc.child(child.Name()))
		if err != nil {
			s.logger.Debug("skipping inaccessible entry",
				zap.String("path", loc.Rel()),
				zap.String("name", child.Name()),
				zap.Error(err),
			)
			continue
		}
		items = append(items, entry)
	}
	return Listing{Path: loc.Rel(), Items: items}, nil
}
