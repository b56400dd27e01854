package common

// PngSignature is the fixed 8-byte header that opens every PNG stream.
var PngSignature []byte = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

/*

Chunks are stored inside a PNG stream in this format, all
multi-byte integers big-endian:

	Length   uint32
	Type     [4]byte
	Payload  []byte
	Crc      uint32

The CRC covers Type ++ Payload, not Length.

*/

const (
	PngSignatureLength = 8

	// ChunkOverhead is the byte cost of a chunk beyond its payload:
	// length field, type field, and trailing CRC.
	ChunkOverhead = 12
)
