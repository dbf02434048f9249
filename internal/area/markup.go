package area

import "strings"

// StripMarkup removes colour markup from a room name: ROM style codes such as
// "{W" and "{x" as well as raw ANSI escape sequences. "{{" is an escaped brace.
//
// Postcondition: Returns text free of colour codes and surrounding whitespace.
func StripMarkup(s string) string {
	return strings.TrimSpace(stripCodes(StripANSI(s)))
}

func stripCodes(s string) string {
	if !strings.ContainsRune(s, '{') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			// dangling brace
			break
		}
		if s[i+1] == '{' {
			b.WriteByte('{')
		}
		i++
	}
	return b.String()
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}
