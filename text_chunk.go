package aiff

import "fmt"

var (
	// CIDName is the chunk ID of the name text chunk.
	CIDName = [4]byte{'N', 'A', 'M', 'E'}
	// CIDAuth is the chunk ID of the author text chunk.
	CIDAuth = [4]byte{'A', 'U', 'T', 'H'}
	// CIDCopyright is the chunk ID of the copyright text chunk.
	CIDCopyright = [4]byte{'(', 'c', ')', ' '}
	// CIDAnno is the chunk ID of an annotation text chunk.
	CIDAnno = [4]byte{'A', 'N', 'N', 'O'}
)

// Metadata holds the AIFF text chunks written on Close. Empty fields are
// skipped.
type Metadata struct {
	Name        string
	Author      string
	Copyright   string
	Annotations []string
}

func (m *Metadata) empty() bool {
	if m == nil {
		return true
	}

	if m.Name != "" || m.Author != "" || m.Copyright != "" {
		return false
	}

	for _, a := range m.Annotations {
		if a != "" {
			return false
		}
	}

	return true
}

// Chunks returns the text chunks in the order they are written.
func (m *Metadata) Chunks() []RawChunk {
	if m.empty() {
		return nil
	}

	var chunks []RawChunk

	add := func(id [4]byte, text string) {
		if text == "" {
			return
		}

		chunks = append(chunks, RawChunk{ID: id, Size: uint32(len(text)), Data: []byte(text)})
	}

	add(CIDName, m.Name)
	add(CIDAuth, m.Author)
	add(CIDCopyright, m.Copyright)

	for _, a := range m.Annotations {
		add(CIDAnno, a)
	}

	return chunks
}

func (e *Encoder) hasTrailingChunks() bool {
	return !e.Metadata.empty() || len(e.UnknownChunks) > 0
}

func (e *Encoder) writeTrailingChunks() error {
	for _, chunk := range e.Metadata.Chunks() {
		err := e.writeRawChunk(chunk)
		if err != nil {
			return fmt.Errorf("failed to write metadata - %w", err)
		}
	}

	for _, chunk := range e.UnknownChunks {
		err := e.writeRawChunk(chunk)
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) writeRawChunk(chunk RawChunk) error {
	size := uint32(len(chunk.Data))

	err := e.AddBE(chunk.ID)
	if err != nil {
		return fmt.Errorf("failed to write raw chunk id %q: %w", chunk.ID, err)
	}

	err = e.AddBE(size)
	if err != nil {
		return fmt.Errorf("failed to write raw chunk size %q: %w", chunk.ID, err)
	}

	if len(chunk.Data) > 0 {
		n, err := e.w.Write(chunk.Data)
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write raw chunk payload %q: %w", chunk.ID, err)
		}
	}

	if size%2 == 1 {
		n, err := e.w.Write([]byte{0})
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write raw chunk padding %q: %w", chunk.ID, err)
		}
	}

	return nil
}
