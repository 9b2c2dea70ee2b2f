// Package sidecar merges extracted metadata into one record and writes it
// next to the source image as JSON.
package sidecar

import (
	"github.com/ryoh827/photometa/internal/exif"
	"github.com/ryoh827/photometa/internal/fileattr"
)

// Record is the flattened sidecar document. Field order is the JSON key
// order: filename, file attributes, then camera fields.
type Record struct {
	Filename string `json:"filename,omitempty"`
	fileattr.Attributes
	exif.CameraMetadata
}

// Merge combines file attributes and camera metadata.
func Merge(attrs fileattr.Attributes, camera exif.CameraMetadata) Record {
	return Record{
		Attributes:     attrs,
		CameraMetadata: camera,
	}
}

// Named returns a copy of r that records the source file name.
func (r Record) Named(name string) Record {
	r.Filename = name
	return r
}
