package reminder

import (
	"fmt"
	"regexp"

	"github.com/slack-go/slack"

	"github.com/F3-Nation/slack-reminders/internal/domain"
)

// CompileContactPattern compiles a region's emergency contact pattern
// with the match semantics the settings were written against:
// case-insensitive, anchored at the start of the field, trailing text
// allowed. "555-123-4567 (spouse)" passes `^\d{3}-\d{3}-\d{4}`.
func CompileContactPattern(expr string) (*regexp.Regexp, error) {
	pattern, err := regexp.Compile(`(?i)\A(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile contact pattern %q: %w", expr, err)
	}
	return pattern, nil
}

// Offenders returns the IDs of directory users, in directory order,
// whose designated profile field is empty or fails the pattern. Only
// users present in the recent-attendee set are considered.
func Offenders(users []slack.User, recent map[string]struct{}, field domain.ProfileField, pattern *regexp.Regexp) []string {
	offenders := make([]string, 0)
	for _, user := range users {
		if _, ok := recent[user.ID]; !ok {
			continue
		}

		value := profileValue(user.Profile, field)
		if value == "" || !pattern.MatchString(value) {
			offenders = append(offenders, user.ID)
		}
	}

	return offenders
}

func profileValue(profile slack.UserProfile, field domain.ProfileField) string {
	switch field {
	case domain.FieldTitle:
		return profile.Title
	case domain.FieldRealName:
		return profile.RealName
	case domain.FieldDisplayName:
		return profile.DisplayName
	case domain.FieldPhone:
		return profile.Phone
	default:
		return ""
	}
}
