package reminder

import (
	"testing"
	"time"

	"github.com/F3-Nation/slack-reminders/internal/domain"
)

func row(day int, startTime, leaderID, aoChannelID, siteLeaderID string) domain.MissingBackblast {
	return domain.MissingBackblast{
		Date:         date(2024, time.March, day),
		StartTime:    startTime,
		DayAbbrev:    "Mon",
		EventType:    "Beatdown",
		LeaderID:     leaderID,
		AOChannelID:  aoChannelID,
		SiteLeaderID: siteLeaderID,
	}
}

func TestGroupByLeader_FiltersAndPartitions(t *testing.T) {
	rows := []domain.MissingBackblast{
		row(4, "0530", "U1", "C1", "S1"),
		row(5, "0530", "", "C1", "S1"),
		row(6, "0600", "U2", "C2", ""),
		row(7, "0530", "U1", "C1", "S1"),
	}

	groups := GroupByLeader(rows)

	if len(groups) != 2 {
		t.Fatalf("expected 2 leader groups, got %d", len(groups))
	}
	if groups[0].RecipientID != "U1" || groups[1].RecipientID != "U2" {
		t.Fatalf("expected first-occurrence key order U1, U2; got %q, %q", groups[0].RecipientID, groups[1].RecipientID)
	}
	if len(groups[0].Rows) != 2 || len(groups[1].Rows) != 1 {
		t.Fatalf("unexpected group sizes: %d, %d", len(groups[0].Rows), len(groups[1].Rows))
	}
	if groups[0].Kind != GroupLeader {
		t.Fatalf("expected leader kind, got %v", groups[0].Kind)
	}

	// No row with an empty leader may appear in any leader group.
	for _, g := range groups {
		for _, r := range g.Rows {
			if !r.HasLeader() {
				t.Fatalf("leaderless row leaked into leader group %q", g.RecipientID)
			}
			if r.LeaderID != g.RecipientID {
				t.Fatalf("row keyed %q landed in group %q", r.LeaderID, g.RecipientID)
			}
		}
	}
}

func TestGroupByLeader_PreservesRowOrder(t *testing.T) {
	rows := []domain.MissingBackblast{
		row(4, "0530", "U1", "C1", ""),
		row(4, "0600", "U2", "C1", ""),
		row(6, "0530", "U1", "C2", ""),
		row(9, "0530", "U1", "C1", ""),
	}

	groups := GroupByLeader(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	u1 := groups[0]
	if len(u1.Rows) != 3 {
		t.Fatalf("expected 3 rows for U1, got %d", len(u1.Rows))
	}
	for i := 1; i < len(u1.Rows); i++ {
		if u1.Rows[i].Date.Before(u1.Rows[i-1].Date) {
			t.Fatalf("rows lost their date order inside the group")
		}
	}
}

func TestGroupBySiteLeader_DropsAbsentSiteLeaders(t *testing.T) {
	rows := []domain.MissingBackblast{
		row(4, "0530", "U1", "C1", "S1"),
		row(5, "0530", "U2", "C2", ""),
		row(6, "0530", "", "C3", "S1"),
	}

	groups := GroupBySiteLeader(rows)

	if len(groups) != 1 {
		t.Fatalf("expected 1 site-leader group, got %d", len(groups))
	}
	if groups[0].RecipientID != "S1" || len(groups[0].Rows) != 2 {
		t.Fatalf("unexpected group: key=%q rows=%d", groups[0].RecipientID, len(groups[0].Rows))
	}
}

func TestGroupByAOChannel_CoversEveryRow(t *testing.T) {
	rows := []domain.MissingBackblast{
		row(4, "0530", "U1", "C1", "S1"),
		row(5, "0530", "", "C2", ""),
		row(6, "0530", "U2", "C1", "S1"),
		row(7, "0530", "", "C3", ""),
	}

	groups := GroupByAOChannel(rows)

	total := 0
	for _, g := range groups {
		total += len(g.Rows)
	}
	if total != len(rows) {
		t.Fatalf("AO groups must cover every row: grouped %d of %d", total, len(rows))
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 AO groups, got %d", len(groups))
	}
}

// Three rows, two sharing a leader, one with no leader, all in one AO:
// leader groups see two rows under U1, the AO group sees all three.
func TestGroupingScenario_SharedAOWithLeaderlessRow(t *testing.T) {
	rows := []domain.MissingBackblast{
		row(4, "0530", "U1", "C1", ""),
		row(5, "0530", "U1", "C1", ""),
		row(6, "0530", "", "C1", ""),
	}

	leaderGroups := GroupByLeader(rows)
	if len(leaderGroups) != 1 || leaderGroups[0].RecipientID != "U1" || len(leaderGroups[0].Rows) != 2 {
		t.Fatalf("unexpected leader groups: %+v", leaderGroups)
	}

	aoGroups := GroupByAOChannel(rows)
	if len(aoGroups) != 1 || aoGroups[0].RecipientID != "C1" || len(aoGroups[0].Rows) != 3 {
		t.Fatalf("unexpected AO groups: %+v", aoGroups)
	}
}

func TestGrouping_EmptyInput(t *testing.T) {
	if got := GroupByLeader(nil); len(got) != 0 {
		t.Fatalf("expected no leader groups for empty input, got %d", len(got))
	}
	if got := GroupBySiteLeader(nil); len(got) != 0 {
		t.Fatalf("expected no site-leader groups for empty input, got %d", len(got))
	}
	if got := GroupByAOChannel(nil); len(got) != 0 {
		t.Fatalf("expected no AO groups for empty input, got %d", len(got))
	}
}
