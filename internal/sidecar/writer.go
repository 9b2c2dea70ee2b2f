package sidecar

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const extension = ".json"

// Path returns the sidecar location for an image: same directory and base
// name, extension replaced by .json. Names without an extension, including
// dot-files, get .json appended.
func Path(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + extension
}

// Marshal renders r as 2-space indented JSON without a trailing newline.
func Marshal(r Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return nil, fmt.Errorf("encode sidecar: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write creates or truncates path and writes r to it. A failure part way
// through can leave a truncated file behind.
func Write(path string, r Record) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sidecar: %w", err)
	}

	writer := bufio.NewWriter(file)
	if _, err := writer.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write sidecar %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flush sidecar %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close sidecar %s: %w", path, err)
	}

	return nil
}
