package navfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Loader reads a navigation definitions file.
type Loader struct {
	filePath string
}

// NewLoader creates a new definitions loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file being loaded.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the definitions file. ${VAR} references are
// replaced by the value of the environment variable before parsing.
// Unknown keys are an error.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read definitions file: %w", err)
	}

	data = expandEnv(data, os.LookupEnv)

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse definitions yaml: %w", err)
	}

	return file, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${NAME} with its value. Unset variables become empty.
// A bare $ is left alone so URLs keep their meaning.
func expandEnv(data []byte, lookup func(string) (string, bool)) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := envRef.FindSubmatch(ref)[1]
		value, _ := lookup(string(name))
		return []byte(value)
	})
}
