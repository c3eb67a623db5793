package reminder

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/F3-Nation/slack-reminders/internal/domain"
)

const backblastHeader = "Missing Backblasts!"

// ComposeBackblastReminder builds the Block Kit message for one
// notification group: a header, a kind-specific context line, then one
// section per missing event. Pure function; same group in, same blocks
// out.
func ComposeBackblastReminder(g Group) (fallback string, blocks []slack.Block) {
	var context string
	switch g.Kind {
	case GroupLeader:
		context = "It looks like you forgot to post the following backblast(s). :grimacing:"
		fallback = "Missing Backblast!!! :grimacing:"
	case GroupSiteLeader:
		context = "It looks like there are backblasts missing at the site(s) you lead. :warning:"
		fallback = "Missing Backblasts at your AO! :warning:"
	case GroupAOChannel:
		context = "It looks like there are backblasts missing at this AO. :exploding_head:"
		fallback = "Missing Backblasts at this AO! :exploding_head:"
	}

	blocks = make([]slack.Block, 0, 2+len(g.Rows))
	blocks = append(blocks,
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, backblastHeader, false, false)),
		slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, context, false, false)),
	)
	for _, row := range g.Rows {
		blocks = append(blocks, markdownSection(sectionLine(g.Kind, row)))
	}

	return fallback, blocks
}

// sectionLine renders one missing event. The AO-channel variant omits
// the channel reference since the message already lands in that
// channel; site-leader and AO variants append who was Q when known.
func sectionLine(kind GroupKind, row domain.MissingBackblast) string {
	when := fmt.Sprintf("on %s %s at %s", row.Date.Format("Monday"), row.Date.Format("01/02/06"), row.StartTime)

	var line string
	if kind == GroupAOChannel {
		line = fmt.Sprintf("A %s %s", row.EventType, when)
	} else {
		line = fmt.Sprintf("A %s at <#%s> %s", row.EventType, row.AOChannelID, when)
	}

	if kind != GroupLeader && row.HasLeader() {
		line += fmt.Sprintf(" (<@%s> was Q)", row.LeaderID)
	}

	return line
}

// ComposeContactReminder builds the DM sent to a user whose emergency
// contact field failed validation. The help message is region-supplied.
func ComposeContactReminder(helpMessage string) (fallback string, blocks []slack.Block) {
	blocks = []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Emergency Contact Info Missing!", false, false)),
		slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, "It looks like your emergency contact information is missing. :grimacing:", false, false)),
		markdownSection("Please update your emergency contact information in Slack."),
		markdownSection(helpMessage),
	}

	return "Emergency Contact Info Missing!!! :grimacing:", blocks
}

// BackblastSummary is the log-channel text for the backblast job. Sent
// every run, including when count is zero.
func BackblastSummary(count, graceDays, maxDays int) string {
	return fmt.Sprintf("There are %d missing backblasts as of today (checked between %d and %d days ago).", count, graceDays, maxDays)
}

// ContactAllClear is the log-channel text when every recent attendee
// passed the compliance check.
func ContactAllClear() string {
	return "All users have compliant emergency contacts listed. :white_check_mark:"
}

// ContactRoster is the log-channel text naming every offender by
// mention.
func ContactRoster(offenders []string) string {
	return fmt.Sprintf(
		"There were %d people that do not have compliant emergency contacts listed. They were each sent Slack messages.\n\n<@%s>",
		len(offenders), strings.Join(offenders, ">,<@"))
}

func markdownSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}
