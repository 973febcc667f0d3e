package aiff

// RawChunk stores an extra chunk appended after the sound data.
type RawChunk struct {
	ID [4]byte
	// Size mirrors len(Data); the written size is always len(Data).
	Size uint32
	Data []byte
}

func (c RawChunk) Clone() RawChunk {
	out := c
	out.Data = append([]byte(nil), c.Data...)

	return out
}

func cloneRawChunks(chunks []RawChunk) []RawChunk {
	if len(chunks) == 0 {
		return nil
	}

	out := make([]RawChunk, len(chunks))
	for i := range chunks {
		out[i] = chunks[i].Clone()
	}

	return out
}
