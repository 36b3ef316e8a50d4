package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipSpaces(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   int
	}{
		{name: "no spaces", line: "tp", cursor: 0, want: 0},
		{name: "leading spaces", line: "   tp", cursor: 0, want: 3},
		{name: "between words", line: "tp  @s", cursor: 2, want: 4},
		{name: "tabs are not skipped", line: "\ttp", cursor: 0, want: 0},
		{name: "trailing spaces", line: "tp  ", cursor: 2, want: 4},
		{name: "cursor past end", line: "tp", cursor: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SkipSpaces(tt.line, tt.cursor))
		})
	}
}

func TestNextWord(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   Token
		ok     bool
	}{
		{name: "bare word", line: "tp @s", cursor: 0, want: Token{Text: "tp", Start: 0}, ok: true},
		{name: "last word", line: "tp @s", cursor: 3, want: Token{Text: "@s", Start: 3}, ok: true},
		{name: "at space", line: "tp @s", cursor: 2, ok: false},
		{name: "at end of line", line: "tp", cursor: 2, ok: false},
		{name: "empty line", line: "", cursor: 0, ok: false},
		{name: "quoted string", line: `say "hi there" x`, cursor: 4, want: Token{Text: `"hi there"`, Start: 4}, ok: true},
		{name: "escaped quote does not close", line: `say "a\"b"`, cursor: 4, want: Token{Text: `"a\"b"`, Start: 4}, ok: true},
		{name: "unterminated quote runs to end", line: `say "hello`, cursor: 4, want: Token{Text: `"hello`, Start: 4}, ok: true},
		{name: "last closing quote wins", line: `say "a" "b"`, cursor: 4, want: Token{Text: `"a" "b"`, Start: 4}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextWord(tt.line, tt.cursor)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNextWord_Idempotent(t *testing.T) {
	line := `say "unterminated \"quote`
	first, ok1 := NextWord(line, 4)
	second, ok2 := NextWord(line, 4)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, len(line), first.End())
}

func TestNextSelector(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   string
		ok     bool
	}{
		{name: "not a selector", line: "tp steve", cursor: 3, ok: false},
		{name: "bare sigil", line: "@", cursor: 0, want: "@", ok: true},
		{name: "kind", line: "tp @s ~ ~ ~", cursor: 3, want: "@s", ok: true},
		{name: "long kind", line: "@initiator", cursor: 0, want: "@initiator", ok: true},
		{name: "closed group", line: "@e[type=cow] ~", cursor: 0, want: "@e[type=cow]", ok: true},
		{name: "nested group", line: "@e[hasitem=[{item=a}]] x", cursor: 0, want: "@e[hasitem=[{item=a}]]", ok: true},
		{name: "bracket in quotes ignored", line: `@e[name="]"] x`, cursor: 0, want: `@e[name="]"]`, ok: true},
		{name: "unbalanced runs to end", line: "@e[type=cow,", cursor: 0, want: "@e[type=cow,", ok: true},
		{name: "kind stops at uppercase", line: "@eX", cursor: 0, want: "@e", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextSelector(tt.line, tt.cursor)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Text)
				assert.Equal(t, tt.cursor, got.Start)
			}
		})
	}
}

func TestNextBlockState(t *testing.T) {
	tok, ok := NextBlockState(`setblock ~ ~ ~ stone ["stone_type"="granite"] replace`, 21)
	require.True(t, ok)
	assert.Equal(t, `["stone_type"="granite"]`, tok.Text)
	assert.True(t, tok.Closed())

	tok, ok = NextBlockState("stone [a=1", 6)
	require.True(t, ok)
	assert.Equal(t, "[a=1", tok.Text)
	assert.False(t, tok.Closed())

	_, ok = NextBlockState("stone", 0)
	assert.False(t, ok)
}

func TestNextSelectorArgumentKey(t *testing.T) {
	tok, ok := NextSelectorArgumentKey("@e[type=cow]", 3)
	require.True(t, ok)
	assert.Equal(t, Token{Text: "type", Start: 3}, tok)

	tok, ok = NextSelectorArgumentKey("@e[has_property=x]", 3)
	require.True(t, ok)
	assert.Equal(t, "has_property", tok.Text)

	_, ok = NextSelectorArgumentKey("@e[=cow]", 3)
	assert.False(t, ok)

	_, ok = NextSelectorArgumentKey("@e[", 3)
	assert.False(t, ok)
}

func TestNextSelectorOperator(t *testing.T) {
	tests := []struct {
		line   string
		cursor int
		want   string
		ok     bool
	}{
		{line: "type=cow", cursor: 4, want: "=", ok: true},
		{line: "type=!cow", cursor: 4, want: "=!", ok: true},
		{line: "type!=cow", cursor: 4, ok: false},
		{line: "type<cow", cursor: 4, ok: false},
		{line: "type", cursor: 4, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := NextSelectorOperator(tt.line, tt.cursor)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Text)
				assert.Equal(t, tt.cursor, got.Start)
			}
		})
	}
}

func TestNextSelectorValue(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   string
		ok     bool
	}{
		{name: "identifier", line: "type=minecraft:cow]", cursor: 5, want: "minecraft:cow", ok: true},
		{name: "number", line: "r=-1.5,", cursor: 2, want: "-1.5", ok: true},
		{name: "relative", line: "x=~2]", cursor: 2, want: "~2", ok: true},
		{name: "quoted stops at first close", line: `name="a b",tag="c"]`, cursor: 5, want: `"a b"`, ok: true},
		{name: "unterminated quote", line: `name="a b`, cursor: 5, want: `"a b`, ok: true},
		{name: "empty", line: "type=]", cursor: 5, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextSelectorValue(tt.line, tt.cursor)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Text)
			}
		})
	}
}
