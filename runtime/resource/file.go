package resource

import (
	"errors"
	"os"
	"strings"

	"github.com/wfl-lang/wfl/runtime/value"
)

// FileMode selects how `open file at ... for` opens the underlying
// descriptor.
type FileMode int

const (
	ReadMode FileMode = iota
	WriteMode
	AppendMode
)

// File is a live file handle. OpenFile returns it alongside the
// generic *value.Resource the interpreter stores in its environment,
// so resource-specific operations (ReadAll, Write) stay available
// without the interpreter needing to know resource.File exists.
type File struct {
	Path string
	mode FileMode
	f    *os.File
}

// OpenFile opens path per mode and wires a *value.Resource around it
// whose Close releases the OS descriptor exactly once.
func OpenFile(path string, mode FileMode) (*value.Resource, *File, error) {
	var flag int
	switch mode {
	case ReadMode:
		flag = os.O_RDONLY
	case WriteMode:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case AppendMode:
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return nil, nil, errors.New("resource: unknown file mode")
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, nil, err
	}

	handle := &File{Path: path, mode: mode, f: f}
	res := &value.Resource{
		KindName: "file",
		ID:       nextID(),
		Closer:   f.Close,
	}
	return res, handle, nil
}

// ReadAll reads the file's entire remaining contents as text, per
// spec.md's lossy-UTF-8 text model for resource reads.
func (f *File) ReadAll() (string, error) {
	if f.mode != ReadMode {
		return "", errors.New("resource: file not opened for reading")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// Write appends text to the file, valid only in write/append mode.
func (f *File) Write(text string) error {
	if f.mode == ReadMode {
		return errors.New("resource: file not opened for writing")
	}
	_, err := f.f.WriteString(text)
	return err
}
