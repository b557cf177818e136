package command

import "strings"

// ParseResult holds the parsed command name and arguments from a prompt line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining whitespace-separated words.
	Args []string
}

// Parse splits a prompt line into a command and arguments.
// A '#' starts a comment that runs to the end of the line, so scripted
// encounters can be annotated.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParseResult{}
	}
	var args []string
	if len(fields) > 1 {
		args = fields[1:]
	}
	return ParseResult{
		Command: strings.ToLower(fields[0]),
		Args:    args,
	}
}
