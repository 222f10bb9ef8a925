// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
)

// ErrNotFound is returned when a ROM with the requested name does not exist.
var ErrNotFound = errors.New("rom not found")

// romExtensions lists the file extensions that are listed as ROMs,
// files without extension are listed as well.
var romExtensions = []string{".ch8", ".c8", ".rom"}

// Loader looks up ROMs by name in a file system.
type Loader struct {
	fsys fs.FS
}

// New creates a new ROM loader that reads from the given file system.
func New(fsys fs.FS) *Loader {
	return &Loader{
		fsys: fsys,
	}
}

// NewDir creates a new ROM loader for the given directory.
func NewDir(dir string) *Loader {
	return New(os.DirFS(dir))
}

// Names returns the sorted names of all ROMs in the root of the file system.
func (l *Loader) Names() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading rom directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isROMName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the content of the ROM with the given name.
// The content is validated to fit into the machine memory.
func (l *Loader) Load(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid name '%s'", ErrNotFound, name)
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading rom %s: %w", name, err)
	}

	if err := validate(data); err != nil {
		return nil, fmt.Errorf("rom %s: %w", name, err)
	}
	return data, nil
}

// LoadFile loads a ROM from the given file path.
func LoadFile(path string) ([]byte, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return NewDir(dir).Load(name)
}

func validate(data []byte) error {
	if len(data) > machine.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the available %d bytes",
			machine.ErrProgramTooLarge, len(data), machine.MaxProgramSize)
	}
	return nil
}

func isROMName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return true
	}
	for _, romExt := range romExtensions {
		if ext == romExt {
			return true
		}
	}
	return false
}
