package common

import "errors"

var (
	ErrFileHeaderMismatch = errors.New("unexpected file header")
	ErrCrcMismatch        = errors.New("crc32 mismatch")
	ErrChunkTruncated     = errors.New("chunk truncated")
	ErrInvalidChunkType   = errors.New("invalid chunk type")
	ErrTypeLength         = errors.New("chunk type must be exactly 4 bytes")
	ErrTypeByte           = errors.New("chunk type byte must be an ASCII letter")
	ErrChunkNotFound      = errors.New("no chunk found with given type")
)
