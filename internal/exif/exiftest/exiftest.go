// Package exiftest builds synthetic images carrying EXIF tags for tests.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// TIFF field types.
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeUndefined = 7
)

const exifIFDPointer = 0x8769

// Entry is one IFD entry.
type Entry struct {
	ID    uint16
	Type  uint16
	Count uint32
	bytes []byte
	nums  []uint32
}

// Tags lists the entries of IFD0 and of the Exif sub-IFD.
type Tags struct {
	IFD0 []Entry
	Exif []Entry
}

// ASCII returns a NUL-terminated ASCII entry.
func ASCII(id uint16, value string) Entry {
	return RawASCII(id, append([]byte(value), 0x00))
}

// RawASCII returns an ASCII entry holding exactly raw.
func RawASCII(id uint16, raw []byte) Entry {
	return Entry{ID: id, Type: TypeASCII, Count: uint32(len(raw)), bytes: raw}
}

func Undefined(id uint16, raw []byte) Entry {
	return Entry{ID: id, Type: TypeUndefined, Count: uint32(len(raw)), bytes: raw}
}

func Byte(id uint16, value uint8) Entry {
	return Entry{ID: id, Type: TypeByte, Count: 1, bytes: []byte{value}}
}

func Short(id uint16, value uint16) Entry {
	return Entry{ID: id, Type: TypeShort, Count: 1, nums: []uint32{uint32(value)}}
}

func Long(id uint16, value uint32) Entry {
	return Entry{ID: id, Type: TypeLong, Count: 1, nums: []uint32{value}}
}

// Camera returns the tags of a Canon body with every field the
// normalizer reads.
func Camera() Tags {
	return Tags{
		IFD0: []Entry{
			ASCII(0x010F, "Canon"),
			ASCII(0x0110, "Canon EOS 5D Mark IV"),
			Short(0x0112, 1),
		},
		Exif: []Entry{
			ASCII(0x9003, "2019:07:26 13:25:33"),
			ASCII(0xA431, "025021000537"),
		},
	}
}

func (e Entry) encode(order binary.AppendByteOrder) []byte {
	if e.nums == nil {
		return e.bytes
	}

	var out []byte
	for _, n := range e.nums {
		switch e.Type {
		case TypeShort:
			out = order.AppendUint16(out, uint16(n))
		default:
			out = order.AppendUint32(out, n)
		}
	}
	return out
}

// TIFF encodes tags as a TIFF stream. When Exif entries are present an
// ExifIFDPointer is appended to IFD0.
func TIFF(order binary.AppendByteOrder, tags Tags) []byte {
	out := []byte("II")
	if order == binary.BigEndian {
		out = []byte("MM")
	}
	out = order.AppendUint16(out, 42)
	out = order.AppendUint32(out, 8)

	ifd0 := append([]Entry(nil), tags.IFD0...)
	if len(tags.Exif) == 0 {
		return append(out, encodeIFD(order, ifd0, 8)...)
	}

	ifd0 = append(ifd0, Long(exifIFDPointer, 0))
	exifStart := 8 + ifdSize(order, ifd0)
	ifd0[len(ifd0)-1] = Long(exifIFDPointer, uint32(exifStart))

	out = append(out, encodeIFD(order, ifd0, 8)...)
	return append(out, encodeIFD(order, tags.Exif, exifStart)...)
}

func ifdSize(order binary.AppendByteOrder, entries []Entry) int {
	size := 2 + 12*len(entries) + 4
	for _, e := range entries {
		if value := e.encode(order); len(value) > 4 {
			size += len(value) + len(value)%2
		}
	}
	return size
}

func encodeIFD(order binary.AppendByteOrder, entries []Entry, start int) []byte {
	head := order.AppendUint16(nil, uint16(len(entries)))
	dataStart := start + 2 + 12*len(entries) + 4

	var data []byte
	for _, e := range entries {
		head = order.AppendUint16(head, e.ID)
		head = order.AppendUint16(head, e.Type)
		head = order.AppendUint32(head, e.Count)

		value := e.encode(order)
		if len(value) <= 4 {
			inline := make([]byte, 4)
			copy(inline, value)
			head = append(head, inline...)
			continue
		}

		head = order.AppendUint32(head, uint32(dataStart+len(data)))
		data = append(data, value...)
		if len(value)%2 == 1 {
			data = append(data, 0x00)
		}
	}
	head = order.AppendUint32(head, 0)

	return append(head, data...)
}

// JPEG wraps a TIFF stream in a JFIF file with an APP1 Exif segment.
func JPEG(tiff []byte) []byte {
	jfif := []byte{0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00}

	payload := append([]byte("Exif\x00\x00"), tiff...)
	length := len(payload) + 2
	app1 := []byte{0xFF, 0xE1, byte(length >> 8), byte(length)}
	app1 = append(app1, payload...)

	out := []byte{0xFF, 0xD8}
	out = append(out, jfif...)
	out = append(out, app1...)
	return append(out, 0xFF, 0xD9)
}

// PNG wraps a TIFF stream in a 1x1 PNG with an eXIf chunk.
func PNG(tiff []byte) []byte {
	out := []byte("\x89PNG\r\n\x1a\n")
	out = appendPNGChunk(out, "IHDR", []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0})
	out = appendPNGChunk(out, "eXIf", tiff)
	return appendPNGChunk(out, "IEND", nil)
}

func appendPNGChunk(out []byte, chunkType string, data []byte) []byte {
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	body := append([]byte(chunkType), data...)
	out = append(out, body...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(body))
}

// WebP wraps a TIFF stream in an extended WebP file with an EXIF chunk.
func WebP(tiff []byte) []byte {
	var chunks []byte
	chunks = appendRIFFChunk(chunks, "VP8X", []byte{0x08, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	chunks = appendRIFFChunk(chunks, "EXIF", tiff)

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(chunks)+4))
	out = append(out, "WEBP"...)
	return append(out, chunks...)
}

func appendRIFFChunk(out []byte, fourCC string, data []byte) []byte {
	out = append(out, fourCC...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, data...)
	if len(data)%2 == 1 {
		out = append(out, 0x00)
	}
	return out
}

// PadTo appends zero bytes after the image until it is size bytes long.
func PadTo(data []byte, size int) []byte {
	if len(data) >= size {
		return data
	}
	return append(data, bytes.Repeat([]byte{0x00}, size-len(data))...)
}
