package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// TagID is a numeric EXIF tag identifier.
type TagID uint16

const (
	TagModel            TagID = 0x0110
	TagOrientation      TagID = 0x0112
	TagExifIFDPointer   TagID = 0x8769
	TagDateTimeOriginal TagID = 0x9003
	TagBodySerialNumber TagID = 0xA431
)

// TagSet holds the decoded tags of the primary image, keyed by identifier.
type TagSet struct {
	order binary.ByteOrder
	tags  map[TagID]*tiff.Tag
}

// RawValue is an undecoded tag value.
type RawValue struct {
	order binary.ByteOrder
	tag   *tiff.Tag
}

// DecodeTags locates the EXIF container in data and decodes IFD0 and the
// Exif sub-IFD. Tags present in IFD0 take precedence.
func DecodeTags(data []byte) (set TagSet, err error) {
	payload, err := locateExif(data)
	if err != nil {
		return TagSet{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			set, err = TagSet{}, fmt.Errorf("%w: decoder panic: %v", ErrInvalidExif, r)
		}
	}()

	x, err := goexif.Decode(bytes.NewReader(payload))
	if err != nil {
		return TagSet{}, fmt.Errorf("%w: %w", ErrInvalidExif, err)
	}
	if x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return TagSet{}, fmt.Errorf("%w: no image file directory", ErrInvalidExif)
	}

	set = TagSet{
		order: x.Tiff.Order,
		tags:  make(map[TagID]*tiff.Tag),
	}
	set.add(x.Tiff.Dirs[0])

	pointer, ok := set.Get(TagExifIFDPointer)
	if !ok {
		return set, nil
	}
	offset, ok := pointer.Uint()
	if !ok || int(offset) >= len(x.Raw) {
		return TagSet{}, fmt.Errorf("%w: exif pointer out of range", ErrInvalidExif)
	}

	reader := bytes.NewReader(x.Raw)
	if _, err := reader.Seek(int64(offset), io.SeekStart); err != nil {
		return TagSet{}, fmt.Errorf("%w: seek exif ifd: %w", ErrInvalidExif, err)
	}
	sub, _, err := tiff.DecodeDir(reader, x.Tiff.Order)
	if err != nil {
		return TagSet{}, fmt.Errorf("%w: exif ifd: %w", ErrInvalidExif, err)
	}
	set.add(sub)

	return set, nil
}

func (s TagSet) add(dir *tiff.Dir) {
	for _, tag := range dir.Tags {
		id := TagID(tag.Id)
		if _, ok := s.tags[id]; ok {
			continue
		}
		s.tags[id] = tag
	}
}

// Get returns the raw value stored under id.
func (s TagSet) Get(id TagID) (RawValue, bool) {
	tag, ok := s.tags[id]
	if !ok {
		return RawValue{}, false
	}
	return RawValue{order: s.order, tag: tag}, true
}

// Text returns the bytes of an ASCII value with NUL terminators removed.
// Multi-string values are concatenated.
func (v RawValue) Text() ([]byte, bool) {
	if v.tag == nil || v.tag.Type != tiff.DTAscii {
		return nil, false
	}
	return bytes.Join(bytes.Split(v.tag.Val, []byte{0}), nil), true
}

// Uint returns the first value of a BYTE, SHORT or LONG tag.
func (v RawValue) Uint() (uint32, bool) {
	if v.tag == nil {
		return 0, false
	}

	val := v.tag.Val
	switch v.tag.Type {
	case tiff.DTByte:
		if len(val) < 1 {
			return 0, false
		}
		return uint32(val[0]), true
	case tiff.DTShort:
		if len(val) < 2 {
			return 0, false
		}
		return uint32(v.order.Uint16(val)), true
	case tiff.DTLong:
		if len(val) < 4 {
			return 0, false
		}
		return v.order.Uint32(val), true
	default:
		return 0, false
	}
}

// String renders the value with the decoder's generic formatting.
func (v RawValue) String() string {
	if v.tag == nil {
		return ""
	}
	return v.tag.String()
}
