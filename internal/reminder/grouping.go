package reminder

import "github.com/F3-Nation/slack-reminders/internal/domain"

// GroupKind identifies which audience a notification group targets.
type GroupKind int

const (
	GroupLeader GroupKind = iota
	GroupSiteLeader
	GroupAOChannel
)

func (k GroupKind) String() string {
	switch k {
	case GroupLeader:
		return "leader"
	case GroupSiteLeader:
		return "site_leader"
	case GroupAOChannel:
		return "ao_channel"
	default:
		return "unknown"
	}
}

// Group is one reminder message's worth of rows, keyed by the Slack ID
// the message goes to (a user for leader and site-leader groups, a
// channel for AO groups).
type Group struct {
	RecipientID string
	Kind        GroupKind
	Rows        []domain.MissingBackblast
}

// GroupByLeader partitions rows by event leader, dropping rows with no
// leader assigned. Fires every run.
func GroupByLeader(rows []domain.MissingBackblast) []Group {
	return partition(rows, GroupLeader,
		domain.MissingBackblast.HasLeader,
		func(r domain.MissingBackblast) string { return r.LeaderID })
}

// GroupBySiteLeader partitions rows by the AO's site leader, dropping
// rows whose AO has none. Fires only on the trigger day.
func GroupBySiteLeader(rows []domain.MissingBackblast) []Group {
	return partition(rows, GroupSiteLeader,
		domain.MissingBackblast.HasSiteLeader,
		func(r domain.MissingBackblast) string { return r.SiteLeaderID })
}

// GroupByAOChannel partitions every row by AO channel; nothing is
// filtered, so the groups cover the whole input. Fires only on the
// trigger day.
func GroupByAOChannel(rows []domain.MissingBackblast) []Group {
	return partition(rows, GroupAOChannel,
		func(domain.MissingBackblast) bool { return true },
		func(r domain.MissingBackblast) string { return r.AOChannelID })
}

// partition is a stable partition-by-key: groups appear in order of
// their key's first occurrence, and rows keep the (date, time) order of
// the input inside each group.
func partition(rows []domain.MissingBackblast, kind GroupKind, include func(domain.MissingBackblast) bool, key func(domain.MissingBackblast) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, row := range rows {
		if !include(row) {
			continue
		}

		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{RecipientID: k, Kind: kind})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}
