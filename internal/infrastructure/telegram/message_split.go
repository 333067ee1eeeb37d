package telegram

import (
	"strings"
	"unicode/utf8"
)

const (
	maxMessageLength = 4096
	// longest Markdown entity marker ("```")
	maxMarkerLen = 3
)

// splitMessage cuts a rendered template into chunks of at most limit runes.
// Messages go out with parse_mode=Markdown, so a cut never lands inside a
// *bold*, _italic_, `code` or ```pre``` entity. Paragraph breaks are
// preferred, then line breaks, then spaces. An entity longer than a whole
// chunk is closed at the cut and reopened in the next chunk.
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = maxMessageLength
	}

	var chunks []string
	for utf8.RuneCountInString(text) > limit {
		byteLimit := runeByteOffset(text, limit)
		if cut := entitySafeCut(text[:byteLimit]); cut > 0 {
			chunks = append(chunks, text[:cut])
			text = text[cut:]
			continue
		}

		window := text[:runeByteOffset(text, max(limit-maxMarkerLen, 1))]
		marker, at := openEntity(window)
		cut := len(window)
		switch {
		case marker == "":
		case at > 0:
			cut = at
		case len(window) > len(marker):
			chunks = append(chunks, window+marker)
			text = marker + text[len(window):]
			continue
		default:
			cut = byteLimit
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}

	if text != "" || len(chunks) == 0 {
		chunks = append(chunks, text)
	}
	return chunks
}

// entitySafeCut returns the preferred cut position within window that leaves
// no entity open, or 0 if every candidate is inside one.
func entitySafeCut(window string) int {
	candidates := make([]int, 0, 4)
	for _, sep := range []string{"\n\n", "\n", " "} {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			candidates = append(candidates, idx+len(sep))
		}
	}
	candidates = append(candidates, len(window))

	for _, c := range candidates {
		if marker, _ := openEntity(window[:c]); marker == "" {
			return c
		}
	}
	return 0
}

// openEntity reports the Markdown entity still open at the end of s and the
// byte offset of its opening marker. Backslash escapes are honoured outside
// code spans.
func openEntity(s string) (marker string, at int) {
	for i := 0; i < len(s); {
		switch marker {
		case "```":
			if strings.HasPrefix(s[i:], "```") {
				marker = ""
				i += 3
				continue
			}
			i++
			continue
		case "`":
			if s[i] == '`' {
				marker = ""
			}
			i++
			continue
		}

		c := s[i]
		if c == '\\' {
			i += 2
			continue
		}
		if marker != "" {
			if c == marker[0] {
				marker = ""
			}
			i++
			continue
		}

		switch {
		case strings.HasPrefix(s[i:], "```"):
			marker, at = "```", i
			i += 3
		case c == '`' || c == '*' || c == '_':
			marker, at = string(c), i
			i++
		default:
			i++
		}
	}
	if marker == "" {
		return "", 0
	}
	return marker, at
}

// runeByteOffset returns the byte offset of the n-th rune in s, or len(s)
// when s is shorter.
func runeByteOffset(s string, n int) int {
	offset := 0
	for i := 0; i < n && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}
