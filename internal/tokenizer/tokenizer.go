// Package tokenizer splits console input into positional argument tokens.
package tokenizer

import "strings"

// Tokenize splits text into tokens separated by spaces.
// Double quotes group words into one token and are dropped; \" produces a literal quote.
// An unterminated quote runs to the end of the input.
func Tokenize(text string) []string {
	tokens := []string{}
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '\\' && i < len(text)-1 && text[i+1] == '"' {
			current.WriteByte('"')
			i++
			continue
		}

		if c == '"' {
			inQuotes = !inQuotes
			continue
		}

		if c == ' ' && !inQuotes {
			if current.Len() == 0 {
				continue
			}
			tokens = append(tokens, current.String())
			current.Reset()
			continue
		}

		current.WriteByte(c)
	}

	// Flush the token still being typed, including an unterminated quoted one
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// LastTokenIsComplete reports whether the cursor sits after a finished token,
// i.e. text is empty or ends with a space.
func LastTokenIsComplete(text string) bool {
	return text == "" || text[len(text)-1] == ' '
}

// ArgumentUnderCursor returns the token currently being typed, or "" when a new one is about to start.
func ArgumentUnderCursor(text string) string {
	if LastTokenIsComplete(text) {
		return ""
	}
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// Quote returns token in a form Tokenize reads back as a single token.
func Quote(token string) string {
	if !strings.ContainsAny(token, ` "`) {
		return token
	}
	escaped := strings.ReplaceAll(token, `"`, `\"`)
	if !strings.Contains(token, " ") {
		return escaped
	}
	// a backslash before the closing quote would escape it, so trailing
	// backslashes go after the quotes
	body := strings.TrimRight(escaped, `\`)
	return `"` + body + `"` + escaped[len(body):]
}

// Join quotes each token as needed and joins them with single spaces.
func Join(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = Quote(t)
	}
	return strings.Join(quoted, " ")
}
