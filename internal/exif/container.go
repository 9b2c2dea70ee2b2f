package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

const (
	jpegSOI  = 0xD8
	jpegAPP1 = 0xE1
	jpegSOS  = 0xDA
	jpegEOI  = 0xD9

	pngSignatureLength = 8
	riffHeaderLength   = 12
)

var (
	exifHeader    = []byte("Exif\x00\x00")
	tiffLittleEnd = []byte("II*\x00")
	tiffBigEnd    = []byte("MM\x00*")
)

// locateExif returns the TIFF-structured EXIF payload embedded in data.
func locateExif(data []byte) ([]byte, error) {
	if isTIFF(data) {
		return data, nil
	}

	detected := mimetype.Detect(data)
	switch {
	case isMIME(detected, "image/jpeg"):
		return jpegExif(data)
	case isMIME(detected, "image/tiff"):
		return data, nil
	case isMIME(detected, "image/png"):
		return pngExif(data)
	case isMIME(detected, "image/webp"):
		return webpExif(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, detected.String())
	}
}

func isMIME(detected *mimetype.MIME, want string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(want) {
			return true
		}
	}
	return false
}

func isTIFF(data []byte) bool {
	return bytes.HasPrefix(data, tiffLittleEnd) || bytes.HasPrefix(data, tiffBigEnd)
}

func jpegExif(data []byte) ([]byte, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != jpegSOI {
		return nil, fmt.Errorf("%w: not a jpeg image", ErrInvalidExif)
	}

	offset := 2
	for offset+4 <= len(data) {
		if data[offset] != 0xFF {
			return nil, fmt.Errorf("%w: invalid jpeg marker at %d", ErrInvalidExif, offset)
		}

		marker := data[offset+1]
		if marker == 0xFF {
			// fill byte
			offset++
			continue
		}
		if marker == jpegSOS || marker == jpegEOI {
			break
		}

		segmentLength := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		if segmentLength < 2 || offset+2+segmentLength > len(data) {
			return nil, fmt.Errorf("%w: invalid jpeg segment length", ErrInvalidExif)
		}

		segment := data[offset+4 : offset+2+segmentLength]
		if marker == jpegAPP1 && bytes.HasPrefix(segment, exifHeader) {
			return segment[len(exifHeader):], nil
		}

		offset += 2 + segmentLength
	}

	return nil, ErrExifNotFound
}

func pngExif(data []byte) ([]byte, error) {
	offset := pngSignatureLength
	for offset+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		chunkType := string(data[offset+4 : offset+8])
		start := offset + 8
		end := start + length
		if length < 0 || end+4 > len(data) {
			return nil, fmt.Errorf("%w: png chunk %q out of range", ErrInvalidExif, chunkType)
		}

		switch chunkType {
		case "eXIf":
			return bytes.TrimPrefix(data[start:end], exifHeader), nil
		case "IEND":
			return nil, ErrExifNotFound
		}

		// skip the trailing CRC
		offset = end + 4
	}

	return nil, ErrExifNotFound
}

func webpExif(data []byte) ([]byte, error) {
	offset := riffHeaderLength
	for offset+8 <= len(data) {
		fourCC := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		start := offset + 8
		end := start + size
		if size < 0 || end > len(data) {
			return nil, fmt.Errorf("%w: webp chunk %q out of range", ErrInvalidExif, fourCC)
		}

		if fourCC == "EXIF" {
			return bytes.TrimPrefix(data[start:end], exifHeader), nil
		}

		offset = end + size%2
	}

	return nil, ErrExifNotFound
}
