package sandbox

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vaultfs/vaultfs/internal/infrastructure/logging"
)

// Service exposes a sandboxed view of a directory subtree. Every operation
// passes its path arguments through the resolver before touching the
// filesystem; no code path bypasses that gate.
//
// The service holds no mutable state beyond the fixed base directory, so
// concurrent requests need no locking. Two concurrent mutators of the same
// path race at the granularity of the underlying filesystem.
type Service struct {
	resolver *Resolver
	logger   *logging.Logger
}

// New creates a service rooted at the given base directory.
func New(root string, logger *logging.Logger) (*Service, error) {
	if logger == nil {
		logger = &logging.Logger{Logger: zap.NewNop()}
	}
	resolver, err := NewResolver(root)
	if err != nil {
		return nil, err
	}
	logger.Info("sandbox initialized", zap.String("root", resolver.Root()))
	return &Service{resolver: resolver, logger: logger}, nil
}

// Root returns the canonicalized base directory.
func (s *Service) Root() string { return s.resolver.Root() }

// Healthy reports whether the base directory currently exists and is a
// directory, independent of any single request.
func (s *Service) Healthy() bool {
	info, err := os.Stat(s.resolver.Root())
	return err == nil && info.IsDir()
}

// Resolve exposes the path gate directly, for the debug endpoint.
func (s *Service) Resolve(raw string) (Location, error) {
	return s.resolver.Resolve(raw)
}

// ResolveInfo is the raw resolution result for one input, an operational aid
// for diagnosing traversal and encoding edge cases.
type ResolveInfo struct {
	Input    string   `json:"input_path"`
	Resolved string   `json:"resolved_path"`
	Exists   bool     `json:"exists"`
	IsDir    *bool    `json:"is_dir"`
	IsFile   *bool    `json:"is_file"`
	Parent   string   `json:"parent"`
	Parts    []string `json:"parts"`
}

// Inspect resolves raw and reports what the resolver produced.
func (s *Service) Inspect(raw string) (ResolveInfo, error) {
	loc, err := s.resolver.Resolve(raw)
	if err != nil {
		return ResolveInfo{}, err
	}
	ri := ResolveInfo{
		Input:    raw,
		Resolved: loc.Abs(),
		Parent:   filepath.Dir(loc.Abs()),
		Parts:    strings.Split(loc.Abs(), string(filepath.Separator)),
	}
	if info, err := os.Stat(loc.Abs()); err == nil {
		ri.Exists = true
		isDir := info.IsDir()
		isFile := info.Mode().IsRegular()
		ri.IsDir = &isDir
		ri.IsFile = &isFile
	}
	return ri, nil
}
