package reminder

import (
	"reflect"
	"testing"
	"time"

	"github.com/slack-go/slack"

	"github.com/F3-Nation/slack-reminders/internal/domain"
)

func sectionTexts(t *testing.T, blocks []slack.Block) []string {
	t.Helper()

	texts := make([]string, 0)
	for _, b := range blocks {
		if section, ok := b.(*slack.SectionBlock); ok {
			texts = append(texts, section.Text.Text)
		}
	}
	return texts
}

func TestComposeBackblastReminder_LeaderTemplate(t *testing.T) {
	g := Group{
		RecipientID: "U1",
		Kind:        GroupLeader,
		Rows: []domain.MissingBackblast{
			{Date: date(2024, time.March, 4), StartTime: "0530", EventType: "Beatdown", LeaderID: "U1", AOChannelID: "C1"},
		},
	}

	fallback, blocks := ComposeBackblastReminder(g)

	if fallback != "Missing Backblast!!! :grimacing:" {
		t.Fatalf("unexpected fallback: %q", fallback)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected header+context+1 section, got %d blocks", len(blocks))
	}

	header, ok := blocks[0].(*slack.HeaderBlock)
	if !ok {
		t.Fatalf("first block should be a header, got %T", blocks[0])
	}
	if header.Text.Text != "Missing Backblasts!" {
		t.Fatalf("unexpected header text: %q", header.Text.Text)
	}
	if _, ok := blocks[1].(*slack.ContextBlock); !ok {
		t.Fatalf("second block should be a context block, got %T", blocks[1])
	}

	sections := sectionTexts(t, blocks)
	want := "A Beatdown at <#C1> on Monday 03/04/24 at 0530"
	if sections[0] != want {
		t.Fatalf("section = %q, want %q", sections[0], want)
	}
}

func TestComposeBackblastReminder_SiteLeaderAddsQSuffix(t *testing.T) {
	g := Group{
		RecipientID: "S1",
		Kind:        GroupSiteLeader,
		Rows: []domain.MissingBackblast{
			{Date: date(2024, time.March, 4), StartTime: "0530", EventType: "Beatdown", LeaderID: "U1", AOChannelID: "C1", SiteLeaderID: "S1"},
			{Date: date(2024, time.March, 5), StartTime: "0600", EventType: "Ruck", AOChannelID: "C1", SiteLeaderID: "S1"},
		},
	}

	fallback, blocks := ComposeBackblastReminder(g)

	if fallback != "Missing Backblasts at your AO! :warning:" {
		t.Fatalf("unexpected fallback: %q", fallback)
	}

	sections := sectionTexts(t, blocks)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if want := "A Beatdown at <#C1> on Monday 03/04/24 at 0530 (<@U1> was Q)"; sections[0] != want {
		t.Fatalf("section = %q, want %q", sections[0], want)
	}
	// Leaderless row must not carry the Q suffix.
	if want := "A Ruck at <#C1> on Tuesday 03/05/24 at 0600"; sections[1] != want {
		t.Fatalf("section = %q, want %q", sections[1], want)
	}
}

func TestComposeBackblastReminder_AOChannelOmitsChannelReference(t *testing.T) {
	g := Group{
		RecipientID: "C1",
		Kind:        GroupAOChannel,
		Rows: []domain.MissingBackblast{
			{Date: date(2024, time.March, 4), StartTime: "0530", EventType: "Beatdown", LeaderID: "U1", AOChannelID: "C1"},
		},
	}

	fallback, blocks := ComposeBackblastReminder(g)

	if fallback != "Missing Backblasts at this AO! :exploding_head:" {
		t.Fatalf("unexpected fallback: %q", fallback)
	}

	sections := sectionTexts(t, blocks)
	if want := "A Beatdown on Monday 03/04/24 at 0530 (<@U1> was Q)"; sections[0] != want {
		t.Fatalf("section = %q, want %q", sections[0], want)
	}
}

func TestComposeBackblastReminder_Idempotent(t *testing.T) {
	g := Group{
		RecipientID: "U1",
		Kind:        GroupLeader,
		Rows: []domain.MissingBackblast{
			{Date: date(2024, time.March, 4), StartTime: "0530", EventType: "Beatdown", LeaderID: "U1", AOChannelID: "C1"},
			{Date: date(2024, time.March, 6), StartTime: "0600", EventType: "Ruck", LeaderID: "U1", AOChannelID: "C2"},
		},
	}

	f1, b1 := ComposeBackblastReminder(g)
	f2, b2 := ComposeBackblastReminder(g)

	if f1 != f2 {
		t.Fatalf("fallback differs between calls: %q vs %q", f1, f2)
	}
	if !reflect.DeepEqual(b1, b2) {
		t.Fatalf("blocks differ between identical calls")
	}
}

func TestComposeContactReminder(t *testing.T) {
	fallback, blocks := ComposeContactReminder("Go to Profile > Edit to add your contact.")

	if fallback != "Emergency Contact Info Missing!!! :grimacing:" {
		t.Fatalf("unexpected fallback: %q", fallback)
	}
	if len(blocks) != 4 {
		t.Fatalf("expected header+context+2 sections, got %d blocks", len(blocks))
	}

	sections := sectionTexts(t, blocks)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1] != "Go to Profile > Edit to add your contact." {
		t.Fatalf("help message should be the final section, got %q", sections[1])
	}
}

func TestSummaryTexts(t *testing.T) {
	if got := BackblastSummary(0, 2, 75); got != "There are 0 missing backblasts as of today (checked between 2 and 75 days ago)." {
		t.Fatalf("unexpected summary: %q", got)
	}

	if got := ContactRoster([]string{"U1", "U2"}); got != "There were 2 people that do not have compliant emergency contacts listed. They were each sent Slack messages.\n\n<@U1>,<@U2>" {
		t.Fatalf("unexpected roster: %q", got)
	}

	if got := ContactAllClear(); got != "All users have compliant emergency contacts listed. :white_check_mark:" {
		t.Fatalf("unexpected all-clear: %q", got)
	}
}
