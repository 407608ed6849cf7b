package markup

import "strings"

// Comment is one raw structured comment lifted out of a source file. Lines
// are already stripped of the comment prefix; File and Offset identify the
// comment for anchor purposes only and play no part in parsing.
type Comment struct {
	Lines  []string
	File   string
	Offset int
}

// ExtractComments scans source text for structured comments: runs of line
// comments opened by "%!" or "%%", and "/** ... */" block comments. Plain
// "%" comments are not documentation and are skipped.
func ExtractComments(file string, src string) []Comment {
	var out []Comment
	lines := strings.Split(src, "\n")
	offset := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")

		switch {
		case strings.HasPrefix(trimmed, "%!") || strings.HasPrefix(trimmed, "%%"):
			start := offset
			var block []string
			for i < len(lines) {
				t := strings.TrimLeft(lines[i], " \t")
				if !strings.HasPrefix(t, "%") {
					break
				}
				block = append(block, t)
				offset += len(lines[i]) + 1
				i++
			}
			i--
			out = append(out, Comment{
				Lines:  stripLinePrefix(block),
				File:   file,
				Offset: start,
			})
			continue

		case strings.Contains(line, "/**"):
			start := offset + strings.Index(line, "/**")
			var block []string
			rest := line[strings.Index(line, "/**")+3:]
			for {
				if end := strings.Index(rest, "*/"); end >= 0 {
					block = append(block, rest[:end])
					break
				}
				block = append(block, rest)
				offset += len(lines[i]) + 1
				i++
				if i >= len(lines) {
					// Unterminated block comments close at end of text.
					break
				}
				rest = lines[i]
			}
			out = append(out, Comment{
				Lines:  stripBlockPrefix(block),
				File:   file,
				Offset: start,
			})
			if i < len(lines) {
				offset += len(lines[i]) + 1
			}
			continue
		}
		offset += len(line) + 1
	}
	return out
}

// stripLinePrefix removes the comment prefix derived from the opening
// line ("%! ", "%%  ", ...) from every line, un-indenting the comment
// regardless of how the source indents it.
func stripLinePrefix(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	width := prefixWidth(lines[0])

	out := make([]string, len(lines))
	for i, line := range lines {
		w := prefixWidth(line)
		if w > width {
			w = width
		}
		out[i] = line[w:]
	}
	return out
}

// prefixWidth measures the opening delimiter of a line comment: the run of
// '%' and '!' characters plus the whitespace that follows it.
func prefixWidth(line string) int {
	i := 0
	for i < len(line) && (line[i] == '%' || line[i] == '!') {
		i++
	}
	delim := i
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if delim == 0 {
		return 0
	}
	return i
}

// stripBlockPrefix handles "/** ... */" bodies, where continuation lines
// conventionally open with " * ".
func stripBlockPrefix(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		t := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(t, "*") && !strings.HasPrefix(t, "* ") && t != "*" {
			// A '*' glued to text is content, not prefix.
			out = append(out, t)
			continue
		}
		t = strings.TrimPrefix(t, "*")
		t = strings.TrimPrefix(t, " ")
		out = append(out, t)
	}
	if len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	return out
}
