package exif

import (
	"errors"
	"time"
)

var (
	ErrExifNotFound      = errors.New("exif data not found")
	ErrInvalidExif       = errors.New("invalid exif data")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// IsFormatError reports whether err came from a missing, unsupported or
// malformed tag container rather than from reading the file.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrExifNotFound) ||
		errors.Is(err, ErrInvalidExif) ||
		errors.Is(err, ErrUnsupportedFormat)
}

// captureLayout is the EXIF DateTimeOriginal encoding.
const captureLayout = "2006:01:02 15:04:05"

// CameraMetadata is the normalized subset of EXIF tags written to sidecars.
type CameraMetadata struct {
	Orientation  *uint32    `json:"orientation,omitempty"`
	CaptureTime  *NaiveTime `json:"capture_time,omitempty"`
	CameraModel  *string    `json:"camera_model,omitempty"`
	CameraSerial *string    `json:"camera_serial,omitempty"`
}

// Extract reads the image at path and normalizes its EXIF tags.
// Missing or malformed tags leave the matching field nil; only an
// unreadable file or an undecodable container is an error.
func Extract(path string, source ImageSource) (CameraMetadata, error) {
	data, err := readImage(source, path)
	if err != nil {
		return CameraMetadata{}, err
	}

	tags, err := DecodeTags(data)
	if err != nil {
		return CameraMetadata{}, err
	}

	return Normalize(tags), nil
}

// Normalize converts raw tags into CameraMetadata.
func Normalize(tags TagSet) CameraMetadata {
	var metadata CameraMetadata

	if value, ok := tags.Get(TagOrientation); ok {
		if orientation, ok := value.Uint(); ok {
			metadata.Orientation = &orientation
		}
	}

	if raw, ok := textTag(tags, TagDateTimeOriginal); ok {
		if captured, ok := parseCaptureTime(raw); ok {
			metadata.CaptureTime = &captured
		}
	}

	if model, ok := textTag(tags, TagModel); ok {
		metadata.CameraModel = &model
	}
	if serial, ok := textTag(tags, TagBodySerialNumber); ok {
		metadata.CameraSerial = &serial
	}

	return metadata
}

// parseCaptureTime accepts exactly YYYY:MM:DD HH:MM:SS.
func parseCaptureTime(raw string) (NaiveTime, bool) {
	if len(raw) != len(captureLayout) {
		return NaiveTime{}, false
	}
	parsed, err := time.Parse(captureLayout, raw)
	if err != nil {
		return NaiveTime{}, false
	}
	return NaiveTime{parsed}, true
}

// textTag decodes a text tag from its raw bytes rather than the decoder's
// display form, which quotes and escapes ASCII values.
func textTag(tags TagSet, id TagID) (string, bool) {
	value, ok := tags.Get(id)
	if !ok {
		return "", false
	}

	raw, ok := value.Text()
	if !ok {
		return value.String(), true
	}

	return lossyUTF8(raw), true
}
