package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const fileName = "summaries.jsonl"

var openFileWriter = appendOnlyFileWriter

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}

func getFilePath(directory string) string {
	return filepath.Join(directory, fileName)
}

func appendOnlyFileWriter(directory string) (writer, error) {
	if err := os.MkdirAll(directory, 0775); err != nil {
		return nil, err
	}
	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	return os.OpenFile(getFilePath(directory), flags, 0644)
}
