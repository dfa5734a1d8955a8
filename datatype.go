package atmagic

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
	DataTypeTar
)

// Byte code signatures from https://stackoverflow.com/a/19127748/199475,
// probed in order. Tar has no magic at offset 0; its `ustar` sits at offset
// 257 and is probed last, since a compressed payload can carry those bytes
// there too.
var byteCodeSigs = []struct {
	dataType DataType
	offset   int
	sig      []byte
}{
	{DataTypeGzip, 0, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, 0, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, 0, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZ, 0, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, 0, []byte{0x42, 0x5a, 0x68}},
	{DataTypeTar, 257, []byte("ustar")},
}

// DetectDataType sniffs the data type of the stream behind r without
// consuming it. Unlike a Read-and-Seek approach this also works on streams
// that cannot rewind, such as HTTP response bodies.
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(262)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	for _, entry := range byteCodeSigs {
		end := entry.offset + len(entry.sig)
		if end > len(buff) {
			continue
		}
		if bytes.Equal(buff[entry.offset:end], entry.sig) {
			return entry.dataType, nil
		}
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress wraps r in the decompressor its leading bytes call for.
// Archive container types (zip, tar) and plain streams come back unchanged;
// dispatching members of an archive is ExtractArchive's job.
func MaybeDecompress(r *bufio.Reader) (io.Reader, DataType, error) {
	dt, err := DetectDataType(r)
	if err != nil {
		return nil, dt, err
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(r)
		return gz, dt, err
	case DataTypeBZip2:
		return bzip2.NewReader(r), dt, nil
	case DataTypeXZ:
		xzr, err := xz.NewReader(r, 0)
		return xzr, dt, err
	case DataTypeZ:
		zr, err := zlib.NewReader(r)
		return zr, dt, err
	}

	return r, dt, nil
}
