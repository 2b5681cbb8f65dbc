package document

// CharacterSplitter cuts text into contiguous pieces of ChunkSize characters.
// A character is a Unicode code point. The last piece may be shorter, and
// joining all pieces in order gives back the input unchanged.
type CharacterSplitter struct {
	ChunkSize int
}

func NewCharacterSplitter(chunkSize int) (*CharacterSplitter, error) {
	if chunkSize <= 0 {
		return nil, invalidSizeError("new_character_splitter", chunkSize)
	}

	return &CharacterSplitter{
		ChunkSize: chunkSize,
	}, nil
}

func (cs *CharacterSplitter) SplitText(text string) ([]string, error) {
	if cs.ChunkSize <= 0 {
		return nil, invalidSizeError("split_text", cs.ChunkSize)
	}
	if text == "" {
		return nil, nil
	}

	var chunks []string
	start, count := 0, 0

	// i walks rune starts, so every cut lands on a code point boundary.
	for i := range text {
		if count == cs.ChunkSize {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, text[start:])

	return chunks, nil
}

// ChunkText splits text into size-character chunks.
func ChunkText(text string, size int) ([]string, error) {
	splitter, err := NewCharacterSplitter(size)
	if err != nil {
		return nil, err
	}
	return splitter.SplitText(text)
}
