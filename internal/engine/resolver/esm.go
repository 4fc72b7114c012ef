package resolver

// hasModuleSyntax classifies source text as ES-module syntax by scanning for
// an import or export keyword in statement position, outside comments and
// string literals. It is deliberately lexical: the engine never parses
// JavaScript, it only needs the module/commonjs distinction.
func hasModuleSyntax(code []byte) bool {
	atStatement := true
	i, n := 0, len(code)

	for i < n {
		c := code[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '\n' || c == ';' || c == '}' || c == '{':
			atStatement = true
			i++
		case c == '/' && i+1 < n && code[i+1] == '/':
			for i < n && code[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && code[i+1] == '*':
			i += 2
			for i+1 < n && !(code[i] == '*' && code[i+1] == '/') {
				i++
			}
			i += 2
		case c == '\'' || c == '"' || c == '`':
			i = skipString(code, i)
			atStatement = false
		default:
			if atStatement && (wordAt(code, i, "import") || wordAt(code, i, "export")) {
				return true
			}
			for i < n && isIdentChar(code[i]) {
				i++
			}
			atStatement = false
			// Statement boundaries stay with the outer loop so they reset
			// atStatement; anything else punctuation-like is consumed here.
			if i < n && !isBoundary(code[i]) && !isIdentChar(code[i]) && !isSpace(code[i]) {
				i++
			}
		}
	}
	return false
}

// skipString advances past the string literal starting at i, honoring
// backslash escapes. Template literals are skipped without interpreting
// interpolations; a stray import inside one is an acceptable misread for a
// format probe.
func skipString(code []byte, i int) int {
	quote := code[i]
	i++
	for i < len(code) {
		switch code[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return i
}

func wordAt(code []byte, i int, word string) bool {
	end := i + len(word)
	if end > len(code) || string(code[i:end]) != word {
		return false
	}
	return end == len(code) || !isIdentChar(code[end])
}

func isBoundary(c byte) bool {
	return c == ';' || c == '{' || c == '}' || c == '\n'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
