package utils

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SaveJSON encodes v to the file fileName inside dirPath, creating the directory (with
// permissions 0700) if it does not already exist.
func SaveJSON(dirPath, fileName string, v interface{}) error {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Failed to create directory %q\n", dirPath)
	}

	f, err := os.Create(filepath.Join(dirPath, fileName))
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q in %q\n", fileName, dirPath)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(v); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file %q in %q\n", fileName, dirPath)
	}

	return nil
}

// LoadJSON decodes the file fileName inside dirPath into v, which should be a pointer.
func LoadJSON(dirPath, fileName string, v interface{}) error {
	f, err := os.Open(filepath.Join(dirPath, fileName))
	if err != nil {
		return errors.Wrapf(err, "Failed to open file %q in %q\n", fileName, dirPath)
	}

	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(v); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file %q in %q\n", fileName, dirPath)
	}

	return nil
}
