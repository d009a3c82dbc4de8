// Package persist saves and loads noise graphs in a compact binary format.
//
// A stream starts with the magic "NOISEGRF" and a uvarint format version,
// followed by a gzip-compressed payload:
//
//	kernel count, then one varint seed per kernel
//	node count, then per node in dependency order:
//	    kind tag, name (length-prefixed strings)
//	    source indices (uvarint, each referring to an earlier node)
//	    variant parameters
//	root index
//
// Nodes reached through several parents are stored once, so sharing
// survives a round trip. Kernels are stored by seed and shared the same
// way; on load they are built on first use, one per distinct seed.
package persist

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/noise"
)

// Magic identifies a persisted graph.
const Magic = "NOISEGRF"

// Version is the format version written by Save.
const Version = 1

var (
	// ErrBadMagic is returned when a stream does not start with Magic.
	ErrBadMagic = errors.New("persist: not a noise graph")

	// ErrUnsupportedVersion is returned for format versions this package
	// cannot read.
	ErrUnsupportedVersion = errors.New("persist: unsupported format version")

	// ErrUnknownTag is returned for a kind tag that names no variant.
	ErrUnknownTag = errors.New("persist: unknown module tag")

	// ErrBadReference is returned for a source, kernel or root index that
	// does not refer to an earlier entry.
	ErrBadReference = errors.New("persist: bad reference")

	// ErrInvalidArgument is returned for nil readers, writers or graphs.
	ErrInvalidArgument = errors.New("persist: invalid argument")

	// ErrCorrupt is returned when the payload is malformed or truncated.
	ErrCorrupt = errors.New("persist: corrupt stream")
)

// Limits guarding allocations on load.
const (
	maxNodes   = 1 << 20
	maxKernels = 1 << 16
	maxString  = 1 << 12
	maxPoints  = 1 << 16
)

// Save writes the graph rooted at root to w.
func Save(w io.Writer, root noise.Module) error {
	if w == nil || root == nil {
		return ErrInvalidArgument
	}
	nodes, err := noise.Modules(root)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	hdr := newEncoder(w)
	hdr.uvarint(Version)
	if hdr.err != nil {
		return hdr.err
	}

	zw, err := newCompressor(w)
	if err != nil {
		return err
	}
	enc := newEncoder(zw)
	encodeGraph(enc, nodes)
	if enc.err != nil {
		_ = zw.Close()
		return enc.err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	noise.Logger().Info("persist: saved graph", "nodes", len(nodes))
	return nil
}

// Load reads a graph written by Save and returns its root. On error no
// graph is returned.
func Load(r io.Reader) (noise.Module, error) {
	if r == nil {
		return nil, ErrInvalidArgument
	}
	br := asByteReader(r)

	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadMagic, err)
	}
	if string(magic) != Magic {
		return nil, ErrBadMagic
	}
	hdr := newDecoder(br)
	version := hdr.uvarint()
	if hdr.err != nil {
		return nil, hdr.err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	zr, err := newDecompressor(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	defer zr.Close()

	root, n, err := decodeGraph(newDecoder(asByteReader(zr)))
	if err != nil {
		return nil, err
	}
	noise.Logger().Info("persist: loaded graph", "nodes", n)
	return root, nil
}
