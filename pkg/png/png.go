package png

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tidwall/btree"
	"golang.org/x/sync/errgroup"

	"github.com/beam-cloud/stego/pkg/chunk"
	"github.com/beam-cloud/stego/pkg/common"
)

// Png is an ordered sequence of chunks behind the fixed 8-byte PNG
// signature. Chunk order is preserved exactly as parsed or appended; a
// btree index keyed on the type code serves lookups by name.
type Png struct {
	chunks []*chunk.Chunk
	index  *btree.BTree
}

type typeEntry struct {
	name   string
	chunks []*chunk.Chunk
}

func newTypeIndex() *btree.BTree {
	compare := func(a, b interface{}) bool {
		return a.(*typeEntry).name < b.(*typeEntry).name
	}
	return btree.New(compare)
}

// FromChunks builds a Png holding the given chunks in order.
func FromChunks(chunks []*chunk.Chunk) *Png {
	p := &Png{
		chunks: append([]*chunk.Chunk(nil), chunks...),
		index:  newTypeIndex(),
	}
	p.rebuildIndex()
	return p
}

// Parse decodes a full PNG stream. The signature is checked first,
// then chunk boundaries are located from the length fields, and
// finally each chunk is decoded and CRC-verified concurrently.
func Parse(data []byte) (*Png, error) {
	if len(data) < common.PngSignatureLength || !bytes.Equal(data[:common.PngSignatureLength], common.PngSignature) {
		return nil, common.ErrFileHeaderMismatch
	}

	// First pass: locate chunk boundaries from the length prefixes.
	type span struct{ start, end int }
	var spans []span

	rest := data[common.PngSignatureLength:]
	offset := 0
	for offset < len(rest) {
		if len(rest)-offset < 4 {
			return nil, fmt.Errorf("%w: trailing %d bytes at offset %d", common.ErrChunkTruncated, len(rest)-offset, offset)
		}

		length := binary.BigEndian.Uint32(rest[offset : offset+4])
		total := int(length) + common.ChunkOverhead
		if len(rest)-offset < total {
			return nil, fmt.Errorf("%w: chunk at offset %d declares %d payload bytes, only %d bytes remain", common.ErrChunkTruncated, offset, length, len(rest)-offset)
		}

		spans = append(spans, span{start: offset, end: offset + total})
		offset += total
	}

	// Second pass: decode and CRC-check every chunk in parallel. CRC
	// is the dominant cost on large payloads.
	chunks := make([]*chunk.Chunk, len(spans))
	var g errgroup.Group
	for i, s := range spans {
		i, s := i, s
		g.Go(func() error {
			c, err := chunk.Parse(rest[s.start:s.end])
			if err != nil {
				return fmt.Errorf("chunk %d at offset %d: %w", i, s.start, err)
			}
			chunks[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return FromChunks(chunks), nil
}

func (p *Png) rebuildIndex() {
	p.index = newTypeIndex()
	for _, c := range p.chunks {
		name := c.Type().String()
		if item := p.index.Get(&typeEntry{name: name}); item != nil {
			entry := item.(*typeEntry)
			entry.chunks = append(entry.chunks, c)
			continue
		}
		p.index.Set(&typeEntry{name: name, chunks: []*chunk.Chunk{c}})
	}
}

// Chunks returns the chunk sequence in stream order.
func (p *Png) Chunks() []*chunk.Chunk {
	return p.chunks
}

// AppendChunk adds c at the end of the chunk sequence.
func (p *Png) AppendChunk(c *chunk.Chunk) {
	p.chunks = append(p.chunks, c)

	name := c.Type().String()
	if item := p.index.Get(&typeEntry{name: name}); item != nil {
		entry := item.(*typeEntry)
		entry.chunks = append(entry.chunks, c)
		return
	}
	p.index.Set(&typeEntry{name: name, chunks: []*chunk.Chunk{c}})
}

// ChunkByType returns the first chunk whose type code renders as name.
func (p *Png) ChunkByType(name string) (*chunk.Chunk, bool) {
	item := p.index.Get(&typeEntry{name: name})
	if item == nil {
		return nil, false
	}
	return item.(*typeEntry).chunks[0], true
}

// RemoveFirstChunk removes and returns the first chunk of the given
// type, in stream order.
func (p *Png) RemoveFirstChunk(name string) (*chunk.Chunk, error) {
	for i, c := range p.chunks {
		if c.Type().String() == name {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			p.rebuildIndex()
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", common.ErrChunkNotFound, name)
}

// Bytes serializes the whole stream: signature, then every chunk.
func (p *Png) Bytes() []byte {
	size := common.PngSignatureLength
	for _, c := range p.chunks {
		size += int(c.Length()) + common.ChunkOverhead
	}

	out := make([]byte, 0, size)
	out = append(out, common.PngSignature...)
	for _, c := range p.chunks {
		out = append(out, c.Serialize()...)
	}
	return out
}
