package compare

import "testing"

func TestExtractWordsSplitsOnClassBoundaries(t *testing.T) {
	words := ExtractWords([]byte("foo_bar = baz(1)"), DefaultCompareOptions)
	var texts []string
	line := []byte("foo_bar = baz(1)")
	for _, w := range words {
		texts = append(texts, string(line[w.Start:w.Start+w.Length]))
	}
	want := []string{"foo_bar", " ", "=", " ", "baz", "(", "1", ")"}
	if len(texts) != len(want) {
		t.Fatalf("words = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("word[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestExtractWordsIgnoreSpacesDropsWhitespaceWords(t *testing.T) {
	opts := DefaultCompareOptions
	opts.IgnoreSpaces = true
	words := ExtractWords([]byte("a  b"), opts)
	if len(words) != 2 {
		t.Fatalf("expected 2 words with spaces dropped, got %d: %+v", len(words), words)
	}
}

func TestExtractCharsOneRunePerChar(t *testing.T) {
	chars := ExtractChars([]byte("aé"), DefaultCompareOptions)
	if len(chars) != 2 {
		t.Fatalf("expected 2 chars (a, é), got %d: %+v", len(chars), chars)
	}
	if chars[0].Length != 1 {
		t.Errorf("'a' should be 1 byte, got %d", chars[0].Length)
	}
	if chars[1].Length != 2 {
		t.Errorf("'é' should be 2 bytes in UTF-8, got %d", chars[1].Length)
	}
}
