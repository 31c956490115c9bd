/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package speech prepares tutor replies for synthesis and talks to the
// speech collaborator. Preparation strips the display formatting the prompt
// composer asks for (blackboard color tags, markdown, math delimiters) so
// the audio carries only the spoken text.
package speech

import (
	"fmt"
	"regexp"
	"strings"
)

// Patterns removed from reply text before synthesis. Inner text survives;
// only the markers go.
const (
	boldPattern       = `\*\*([^*]+)\*\*`
	heading2Pattern   = `##\s*([^\n]+)`
	heading1Pattern   = `#\s*([^\n]+)`
	mathPattern       = `\$([^$]+)\$`
	emojiPattern      = `[📋🎓👨‍🏫🔊💬⚙️📝🎯💾🏠🗑️🎤]`
	whitespacePattern = `\s+`
)

// blackboardTags are the color markers the composer's formatting rules emit.
var blackboardTags = []string{"RED", "BLUE", "GREEN", "CIRCLE"}

// Preparer holds the compiled patterns so callers pay the regex cost once.
type Preparer struct {
	colorTags  []*regexp.Regexp
	bold       *regexp.Regexp
	heading2   *regexp.Regexp
	heading1   *regexp.Regexp
	math       *regexp.Regexp
	emoji      *regexp.Regexp
	whitespace *regexp.Regexp
}

// NewPreparer compiles the preparation patterns.
func NewPreparer() *Preparer {
	tags := make([]*regexp.Regexp, 0, len(blackboardTags))
	for _, tag := range blackboardTags {
		tags = append(tags, regexp.MustCompile(fmt.Sprintf(`\[%[1]s\]([^\[]+)\[/%[1]s\]`, tag)))
	}

	return &Preparer{
		colorTags:  tags,
		bold:       regexp.MustCompile(boldPattern),
		heading2:   regexp.MustCompile(heading2Pattern),
		heading1:   regexp.MustCompile(heading1Pattern),
		math:       regexp.MustCompile(mathPattern),
		emoji:      regexp.MustCompile(emojiPattern),
		whitespace: regexp.MustCompile(whitespacePattern),
	}
}

// Prepare strips display formatting from text, keeping the words inside the
// markers, then collapses whitespace runs to single spaces and trims.
func (p *Preparer) Prepare(text string) string {
	if text == "" {
		return text
	}

	text = p.stripColorTags(text)
	text = p.stripMarkdown(text)
	text = p.stripMath(text)
	text = p.stripEmoji(text)

	return p.collapseWhitespace(text)
}

func (p *Preparer) stripColorTags(text string) string {
	for _, tag := range p.colorTags {
		text = tag.ReplaceAllString(text, "$1")
	}
	return text
}

// stripMarkdown removes bold markers and heading hashes. The two-hash
// pattern must run before the one-hash pattern.
func (p *Preparer) stripMarkdown(text string) string {
	text = p.bold.ReplaceAllString(text, "$1")
	text = p.heading2.ReplaceAllString(text, "$1")
	text = p.heading1.ReplaceAllString(text, "$1")
	return text
}

func (p *Preparer) stripMath(text string) string {
	return p.math.ReplaceAllString(text, "$1")
}

func (p *Preparer) stripEmoji(text string) string {
	return p.emoji.ReplaceAllString(text, "")
}

func (p *Preparer) collapseWhitespace(text string) string {
	return strings.TrimSpace(p.whitespace.ReplaceAllString(text, " "))
}

var defaultPreparer = NewPreparer()

// PrepareText runs text through the shared preparer.
func PrepareText(text string) string {
	return defaultPreparer.Prepare(text)
}
