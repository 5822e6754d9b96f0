// Package sandbox confines all filesystem access to a single base directory.
//
// The package is organized around one gate function, Resolver.Resolve, which
// maps an untrusted client path (possibly relative, percent-encoded, empty,
// containing ".." segments, or referencing symlinks) to a verified absolute
// Location inside the base, or fails. Every operation resolves its path
// arguments first and only then touches the filesystem:
//   - metadata: stat one entry (Describe)
//   - listing: enumerate immediate children, dropping unreadable entries (List)
//   - content: read/write/upload file bytes with text detection (ReadText,
//     WriteText, Write, OpenFile)
//   - mutate: create, delete, copy, move (CreateDirectory, Delete, Copy, Move)
//
// Failures carry a Kind from a small taxonomy; messages echo the
// caller-supplied relative path, never resolved absolute paths.
package sandbox
