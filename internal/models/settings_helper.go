package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/whosfree/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingFreeMarkers:
			settings.FreeMarkers = splitList(value)
		case constants.SettingMatchPolicy:
			policy, err := ParseMatchPolicy(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing match_policy: %w", err)
			}
			settings.MatchPolicy = policy
		case constants.SettingSubstringMarkers:
			settings.SubstringMarkers = splitList(value)
		case constants.SettingPeriodLabels:
			settings.PeriodLabels = splitList(value)
		case constants.SettingDayOrder:
			settings.DayOrder = splitList(value)
		case constants.SettingWeekOrder:
			settings.WeekOrder = splitList(value)
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingFreeMarkers:      joinList(settings.FreeMarkers),
		constants.SettingMatchPolicy:      string(settings.MatchPolicy),
		constants.SettingSubstringMarkers: joinList(settings.SubstringMarkers),
		constants.SettingPeriodLabels:     joinList(settings.PeriodLabels),
		constants.SettingDayOrder:         joinList(settings.DayOrder),
		constants.SettingWeekOrder:        joinList(settings.WeekOrder),
	}
}

// DefaultSettings returns the settings used for a freshly initialized store.
func DefaultSettings() Settings {
	s := Settings{}
	ApplyDefaultSettings(&s)
	return s
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.FreeMarkers == nil {
		settings.FreeMarkers = append([]string(nil), constants.DefaultFreeMarkers...)
	}
	if settings.MatchPolicy == "" {
		settings.MatchPolicy = constants.DefaultMatchPolicy
	}
	if len(settings.SubstringMarkers) == 0 {
		settings.SubstringMarkers = append([]string(nil), constants.DefaultSubstringMarkers...)
	}
	if len(settings.PeriodLabels) == 0 {
		settings.PeriodLabels = append([]string(nil), constants.DefaultPeriodLabels...)
	}
	if len(settings.DayOrder) == 0 {
		settings.DayOrder = append([]string(nil), constants.DefaultDayOrder...)
	}
	if len(settings.WeekOrder) == 0 {
		settings.WeekOrder = append([]string(nil), constants.DefaultWeekOrder...)
	}
}

// ParseMatchPolicy validates a match policy name.
func ParseMatchPolicy(s string) (constants.MatchPolicy, error) {
	switch constants.MatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case constants.MatchExact:
		return constants.MatchExact, nil
	case constants.MatchSubstring:
		return constants.MatchSubstring, nil
	case "":
		return constants.DefaultMatchPolicy, nil
	default:
		return "", fmt.Errorf("unknown match policy %q (want %q or %q)", s, constants.MatchExact, constants.MatchSubstring)
	}
}

// ResolveWeek maps user input onto a configured week label.
func (s Settings) ResolveWeek(input string) string {
	return ResolveLabel(input, s.WeekOrder)
}

// ResolveDay maps user input onto a configured day label.
func (s Settings) ResolveDay(input string) string {
	return ResolveLabel(input, s.DayOrder)
}

// ResolveLabel maps user input onto one of the configured labels. It accepts
// the label in any case, its 1-based position, or an unambiguous prefix.
// Anything else is returned trimmed but otherwise unchanged, so lookups
// against data that uses other labels still work.
func ResolveLabel(input string, labels []string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	for _, l := range labels {
		if strings.EqualFold(l, input) {
			return l
		}
	}

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(labels) {
		return labels[n-1]
	}

	var match string
	for _, l := range labels {
		if strings.HasPrefix(strings.ToLower(l), strings.ToLower(input)) {
			if match != "" {
				return input
			}
			match = l
		}
	}
	if match != "" {
		return match
	}
	return input
}

// PeriodLabel returns the label for a 1-based period, falling back to
// "Period N" when the configured labels run out.
func (s Settings) PeriodLabel(period int) string {
	if period >= 1 && period <= len(s.PeriodLabels) {
		return s.PeriodLabels[period-1]
	}
	return fmt.Sprintf("Period %d", period)
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, constants.SettingListSeparator)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func joinList(values []string) string {
	return strings.Join(values, constants.SettingListSeparator)
}
