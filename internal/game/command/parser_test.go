package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("next")
	assert.Equal(t, "next", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_Lowercase(t *testing.T) {
	result := Parse("START")
	assert.Equal(t, "start", result.Command)
}

func TestParse_ArgsKeepCase(t *testing.T) {
	result := Parse("add Goblin 12 npc")
	assert.Equal(t, "add", result.Command)
	assert.Equal(t, []string{"Goblin", "12", "npc"}, result.Args)
}

func TestParse_ExtraWhitespace(t *testing.T) {
	result := Parse("  check   kira   speed  ")
	assert.Equal(t, "check", result.Command)
	assert.Equal(t, []string{"kira", "speed"}, result.Args)
}

func TestParse_Comment(t *testing.T) {
	result := Parse("add Orc 9 npc # second wave")
	assert.Equal(t, "add", result.Command)
	assert.Equal(t, []string{"Orc", "9", "npc"}, result.Args)

	assert.Equal(t, "", Parse("# just a note").Command)
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseArgsCountMatchesFields(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9]{1,8}`), 1, 6).Draw(t, "words")
		line := ""
		for i, w := range words {
			if i > 0 {
				line += " "
			}
			line += w
		}
		result := Parse(line)
		if result.Command != words[0] {
			t.Fatalf("command = %q, want %q", result.Command, words[0])
		}
		if len(result.Args) != len(words)-1 {
			t.Fatalf("got %d args, want %d", len(result.Args), len(words)-1)
		}
	})
}
