package chunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/beam-cloud/stego/pkg/common"
)

// Chunk is a single length-prefixed, type-tagged, CRC-verified unit of
// a PNG stream. Instances are immutable after construction; the CRC is
// always the CRC-32 (IEEE polynomial, reflected) of type ++ payload.
type Chunk struct {
	typ  Type
	data []byte
	crc  uint32
}

// New builds a chunk from a validated type and an arbitrary payload.
// The payload is copied; the CRC is computed here and never settable.
func New(typ Type, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)

	b := typ.Bytes()
	crc := crc32.Update(crc32.ChecksumIEEE(b[:]), crc32.IEEETable, owned)

	return &Chunk{
		typ:  typ,
		data: owned,
		crc:  crc,
	}
}

// Parse decodes a single serialized chunk:
//
//	Length uint32 | Type [4]byte | Payload | Crc uint32
//
// The CRC check runs last so a truncated buffer or bad type code is
// reported as such rather than as corruption.
func Parse(b []byte) (*Chunk, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: %d bytes is too short for a length field", common.ErrChunkTruncated, len(b))
	}

	length := binary.BigEndian.Uint32(b[:4])
	remain := b[4:]
	if uint64(len(remain)) < uint64(length)+8 {
		return nil, fmt.Errorf("%w: declared payload of %d bytes, only %d bytes remain", common.ErrChunkTruncated, length, len(remain))
	}

	typ, err := TypeFromBytes(remain[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidChunkType, err)
	}

	c := New(typ, remain[4:4+length])

	stored := binary.BigEndian.Uint32(remain[4+length : 8+length])
	if c.crc != stored {
		return nil, fmt.Errorf("%w: computed %08x, stored %08x", common.ErrCrcMismatch, c.crc, stored)
	}

	return c, nil
}

// Length returns the payload size in bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk's type code.
func (c *Chunk) Type() Type {
	return c.typ
}

// Data returns a read-only view of the payload. Callers must not
// modify the returned slice.
func (c *Chunk) Data() []byte {
	return c.data
}

// Crc returns the stored checksum.
func (c *Chunk) Crc() uint32 {
	return c.crc
}

// DataString renders the payload as text for display. Invalid UTF-8
// sequences are replaced, never rejected.
func (c *Chunk) DataString() string {
	return strings.ToValidUTF8(string(c.data), "�")
}

// DataCopy returns a copy of the raw payload.
func (c *Chunk) DataCopy() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Serialize encodes the chunk back into its wire layout. The result
// always parses back into an equal chunk.
func (c *Chunk) Serialize() []byte {
	out := make([]byte, 0, len(c.data)+common.ChunkOverhead)
	out = binary.BigEndian.AppendUint32(out, c.Length())
	b := c.typ.Bytes()
	out = append(out, b[:]...)
	out = append(out, c.data...)
	out = binary.BigEndian.AppendUint32(out, c.crc)
	return out
}

// Equal reports field-for-field equality with other.
func (c *Chunk) Equal(other *Chunk) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.typ == other.typ && c.crc == other.crc && bytes.Equal(c.data, other.data)
}

func (c *Chunk) String() string {
	return c.DataString()
}
