package office

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

const (
	forSureTitle  = "In the office:"
	probablyTitle = "Maybe in the office:"

	// NoOneText is the reply when nobody matches.
	NoOneText = "No one has 'In the office' status"
)

// Compose renders the reply: a section for members in the office for sure,
// then one for members probably there. Empty sections are omitted; with no
// members at all a single NoOneText section is returned.
func Compose(tagged []Tagged) *slack.Msg {
	var forSure, probably []Tagged
	for _, t := range tagged {
		switch t.Class {
		case ForSure:
			forSure = append(forSure, t)
		case Probably:
			probably = append(probably, t)
		}
	}

	var blocks []slack.Block
	if len(forSure) > 0 {
		blocks = append(blocks, section(forSureTitle+"\n"+memberLines(forSure)))
	}
	if len(probably) > 0 {
		blocks = append(blocks, section(probablyTitle+"\n"+memberLines(probably)))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, section(NoOneText))
	}

	return &slack.Msg{
		Blocks: slack.Blocks{BlockSet: blocks},
	}
}

func memberLines(tagged []Tagged) string {
	lines := make([]string, 0, len(tagged))
	for _, t := range tagged {
		lines = append(lines, fmt.Sprintf("• <@%s> %s %s", t.ID, t.StatusEmoji, t.StatusText))
	}
	return strings.Join(lines, "\n")
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}
