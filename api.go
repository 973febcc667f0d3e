package aiff

// RawChunks returns a copy of configured extra chunks.
func (e *Encoder) RawChunks() []RawChunk {
	if e == nil {
		return nil
	}

	return cloneRawChunks(e.UnknownChunks)
}

// SetRawChunks replaces configured extra chunks with the provided set.
func (e *Encoder) SetRawChunks(chunks []RawChunk) {
	if e == nil {
		return
	}

	e.UnknownChunks = cloneRawChunks(chunks)
}
