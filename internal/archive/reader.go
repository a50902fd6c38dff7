package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/cavaliergopher/cpio"

	"github.com/vvka-141/vfsh/internal/filesystem"
	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// Format identifies the detected archive encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatTar
	FormatCPIO
	FormatGzipTar
	FormatGzipCPIO
)

func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatCPIO:
		return "cpio"
	case FormatGzipTar:
		return "tar+gzip"
	case FormatGzipCPIO:
		return "cpio+gzip"
	default:
		return "unknown"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	cpioMagic = []byte("07070")
)

// cpioTrailer marks the end of a cpio archive.
const cpioTrailer = "TRAILER!!!"

// Listing is the result of reading an archive.
type Listing struct {
	Format  Format
	Entries []string
}

// Reader lists archives through a filesystem provider.
type Reader struct {
	fsProvider filesystem.Provider
}

// NewReader creates a Reader backed by the OS filesystem.
func NewReader() *Reader {
	return &Reader{fsProvider: filesystem.NewOSFileSystem()}
}

// NewReaderWithFS creates a Reader with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewReaderWithFS(fsProvider filesystem.Provider) *Reader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Reader{fsProvider: fsProvider}
}

// ReadFile opens the archive at path and lists its members in archive order.
func (r *Reader) ReadFile(path string) (Listing, error) {
	info, err := r.fsProvider.Stat(path)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %v", vfsh.ErrInvalidArchive, err)
	}
	if info.IsDir() {
		return Listing{}, fmt.Errorf("%w: %s is a directory", vfsh.ErrInvalidArchive, path)
	}

	rc, err := r.fsProvider.Open(path)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %v", vfsh.ErrInvalidArchive, err)
	}
	defer rc.Close()

	listing, err := Read(rc)
	if err != nil {
		return Listing{}, fmt.Errorf("%s: %w", path, err)
	}
	return listing, nil
}

// Read detects the archive format of src and lists its members.
func Read(src io.Reader) (Listing, error) {
	br := bufio.NewReader(src)
	head, err := br.Peek(len(cpioMagic))
	if len(head) == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			err = errors.New("empty input")
		}
		return Listing{}, fmt.Errorf("%w: %v", vfsh.ErrInvalidArchive, err)
	}

	if bytes.HasPrefix(head, gzipMagic) {
		return readGzip(br)
	}
	return readPlain(br, FormatTar, FormatCPIO)
}

func readGzip(src io.Reader) (Listing, error) {
	zr, err := gzip.NewReader(src)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: gzip: %v", vfsh.ErrInvalidArchive, err)
	}
	defer zr.Close()

	return readPlain(bufio.NewReader(zr), FormatGzipTar, FormatGzipCPIO)
}

func readPlain(br *bufio.Reader, tarFormat, cpioFormat Format) (Listing, error) {
	head, _ := br.Peek(len(cpioMagic))
	if len(head) == 0 {
		return Listing{}, fmt.Errorf("%w: empty input", vfsh.ErrInvalidArchive)
	}

	if bytes.Equal(head, cpioMagic) {
		entries, err := listCPIO(br)
		if err != nil {
			return Listing{}, err
		}
		return Listing{Format: cpioFormat, Entries: entries}, nil
	}

	entries, err := listTar(br)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Format: tarFormat, Entries: entries}, nil
}

func listTar(src io.Reader) ([]string, error) {
	tr := tar.NewReader(src)
	var entries []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: tar: %v", vfsh.ErrInvalidArchive, err)
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		entries = append(entries, hdr.Name)
	}
}

func listCPIO(src io.Reader) ([]string, error) {
	cr := cpio.NewReader(src)
	var entries []string
	for {
		hdr, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: cpio: %v", vfsh.ErrInvalidArchive, err)
		}
		if hdr.Name == cpioTrailer {
			return entries, nil
		}
		entries = append(entries, hdr.Name)
	}
}
