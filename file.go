package multitrack

import (
	"os"
)

type fileSink struct {
	f *os.File
}

// CreateFile creates or truncates the file at path and returns a sink
// writing to it. Flush syncs the file to disk; Close closes it.
func CreateFile(path string) (Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return fileSink{f: f}, nil
}

// AppendFile is CreateFile in append mode: the file is created if
// missing and kept otherwise, with accepted bytes added at the end.
func AppendFile(path string) (Sink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return fileSink{f: f}, nil
}

func (s fileSink) AttemptWrite(p []byte) (int, error) {
	return s.f.Write(p)
}

// Flush commits accepted bytes to stable storage.
func (s fileSink) Flush() error {
	return s.f.Sync()
}

func (s fileSink) Close() error {
	return s.f.Close()
}
