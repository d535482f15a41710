package loader

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Cache entry layout: 4-byte magic, 8-byte little-endian source mtime
// in unix nanoseconds, zstd-compressed converted output. An entry whose
// mtime does not match the current source file is stale and ignored.

const cacheDirName = "__ddmmcache__"

var cacheMagic = []byte("ddmm")

func cachePath(filename string) string {
	dir := filepath.Dir(filename)
	return filepath.Join(dir, cacheDirName, filepath.Base(filename)+".pyz")
}

func readCache(filename string, mtime time.Time) ([]byte, bool) {
	data, err := os.ReadFile(cachePath(filename))
	if err != nil {
		return nil, false
	}

	if len(data) < len(cacheMagic)+8 || !bytes.Equal(data[:len(cacheMagic)], cacheMagic) {
		return nil, false
	}
	data = data[len(cacheMagic):]

	if int64(binary.LittleEndian.Uint64(data[:8])) != mtime.UnixNano() {
		return nil, false
	}

	reader, err := zstd.NewReader(nil)
	if err != nil {
		return nil, false
	}
	defer reader.Close()

	output, err := reader.DecodeAll(data[8:], nil)
	if err != nil {
		return nil, false
	}

	return output, true
}

func writeCache(filename string, mtime time.Time, output []byte) error {
	path := cachePath(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	writer, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	defer writer.Close()

	entry := make([]byte, 0, len(cacheMagic)+8+len(output)/2)
	entry = append(entry, cacheMagic...)
	entry = binary.LittleEndian.AppendUint64(entry, uint64(mtime.UnixNano()))
	entry = writer.EncodeAll(output, entry)

	return os.WriteFile(path, entry, 0o644)
}
