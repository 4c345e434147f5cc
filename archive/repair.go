package archive

import (
	"bytes"
	"encoding/binary"
)

// EOCDSignature starts the end-of-central-directory record.
var EOCDSignature = []byte{0x50, 0x4B, 0x05, 0x06}

// eocdTail is the fixed part of the record after the signature: disk
// numbers, entry counts, directory size and offset, comment length.
const eocdTail = 18

// RepairCentralDirectory cuts everything after the fixed part of the last
// end-of-central-directory record, which assumes an empty archive comment.
// Input without the signature, or too short to hold the record, is returned
// unchanged.
func RepairCentralDirectory(data []byte) []byte {
	i := bytes.LastIndex(data, EOCDSignature)
	if i < 0 {
		return data
	}
	end := i + len(EOCDSignature) + eocdTail
	if end > len(data) {
		return data
	}
	return data[:end]
}

// NeedsRepair reports whether the bytes following the last record disagree
// with its declared comment length.
func NeedsRepair(data []byte) bool {
	i := bytes.LastIndex(data, EOCDSignature)
	if i < 0 {
		return false
	}
	end := i + len(EOCDSignature) + eocdTail
	if end > len(data) {
		return false
	}
	comment := int(binary.LittleEndian.Uint16(data[end-2 : end]))
	return len(data)-end != comment
}
