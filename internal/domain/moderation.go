package domain

import (
	"strings"
	"unicode"
)

var prohibitedWords = []string{
	"asshole",
	"bastard",
	"bitch",
	"bullshit",
	"cunt",
	"dickhead",
	"fuck",
	"fucking",
	"motherfucker",
	"nigger",
	"porn",
	"rape",
	"shit",
	"slut",
	"whore",
}

var defaultModerator = NewModerator(nil)

// IsAllowed reports whether text is free of prohibited words.
func IsAllowed(text string) bool {
	return defaultModerator.IsAllowed(text)
}

// Moderator matches whole words case-insensitively against a word list.
type Moderator struct {
	words map[string]struct{}
}

func NewModerator(extra []string) Moderator {
	words := make(map[string]struct{}, len(prohibitedWords)+len(extra))
	for _, word := range prohibitedWords {
		words[word] = struct{}{}
	}
	for _, word := range extra {
		normalized := strings.ToLower(strings.TrimSpace(word))
		if normalized == "" {
			continue
		}
		words[normalized] = struct{}{}
	}

	return Moderator{words: words}
}

func (m Moderator) IsAllowed(text string) bool {
	if len(m.words) == 0 {
		return true
	}

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if _, banned := m.words[token]; banned {
			return false
		}
	}

	return true
}
