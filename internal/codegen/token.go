// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import "strings"

// Placeholder names.
const (
	TokenInput   = "Input"
	TokenOutput  = "Output"
	TokenValue   = "Value"
	TokenSampler = "Sampler"
	TokenTexture = "Texture"
)

// Token is one placeholder found in a template. Index is -1 for the
// unindexed %Sampler and %Texture.
type Token struct {
	Name  string
	Index int
}

var (
	indexed   = []string{TokenOutput, TokenInput, TokenValue}
	unindexed = []string{TokenSampler, TokenTexture}
)

// Substitute expands the placeholders of template with lookup. A token lookup
// declines, or that is not a known placeholder, is written out unchanged.
func Substitute(template string, lookup func(Token) (string, bool)) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		if template[i] != '%' {
			b.WriteByte(template[i])
			i++
			continue
		}
		tok, n, ok := scanToken(template[i+1:])
		if !ok {
			b.WriteByte('%')
			i++
			continue
		}
		if s, ok := lookup(tok); ok {
			b.WriteString(s)
		} else {
			b.WriteString(template[i : i+1+n])
		}
		i += 1 + n
	}
	return b.String()
}

// Tokens lists the placeholders of template in order of appearance.
func Tokens(template string) []Token {
	var out []Token
	Substitute(template, func(t Token) (string, bool) {
		out = append(out, t)
		return "", false
	})
	return out
}

// scanToken reads a placeholder name right after a '%' and reports how many
// bytes it spans.
func scanToken(s string) (Token, int, bool) {
	for _, name := range indexed {
		if !strings.HasPrefix(s, name) {
			continue
		}
		end := len(name)
		index := 0
		for end < len(s) && isDigit(s[end]) {
			index = index*10 + int(s[end]-'0')
			end++
		}
		if end == len(name) {
			return Token{}, 0, false
		}
		return Token{Name: name, Index: index}, end, true
	}
	for _, name := range unindexed {
		if strings.HasPrefix(s, name) && (len(s) == len(name) || !isIdent(s[len(name)])) {
			return Token{Name: name, Index: -1}, len(name), true
		}
	}
	return Token{}, 0, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdent(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
