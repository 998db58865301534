package annotations

// BraceScanner counts braces line by line while skipping string literals,
// character literals and comments. Block comment state carries across lines.
type BraceScanner struct {
	inBlock bool
}

// InComment reports whether the scanner is inside a block comment
func (s *BraceScanner) InComment() bool {
	return s.inBlock
}

// Scan returns the opening and closing braces found in code on this line.
// reachedZero is set when depth, starting from depth, drops to zero or below after being positive on this line.
func (s *BraceScanner) Scan(line string, depth int) (next int, opened bool, reachedZero bool) {
	next = depth
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]

		if s.inBlock {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				s.inBlock = false
				i++
			}
			continue
		}

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '/':
			if i+1 < len(line) {
				if line[i+1] == '/' {
					return next, opened, reachedZero
				}
				if line[i+1] == '*' {
					s.inBlock = true
					i++
				}
			}
		case '{':
			next++
			opened = true
		case '}':
			next--
			if opened || depth > 0 {
				if next <= 0 {
					reachedZero = true
				}
			}
		}
	}

	return next, opened, reachedZero
}
