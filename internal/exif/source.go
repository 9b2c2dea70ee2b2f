package exif

import (
	"fmt"
	"io"
	"os"
)

// ImageSource opens image files for tag extraction.
type ImageSource interface {
	Open(path string) (io.ReadCloser, error)
}

// OSImageSource reads images from the local filesystem.
type OSImageSource struct{}

func (OSImageSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func readImage(source ImageSource, path string) ([]byte, error) {
	reader, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	return data, nil
}
