package constants

const (
	// Setting keys
	SettingFreeMarkers      = "free_markers"
	SettingMatchPolicy      = "match_policy"
	SettingSubstringMarkers = "substring_markers"
	SettingPeriodLabels     = "period_labels"
	SettingDayOrder         = "day_order"
	SettingWeekOrder        = "week_order"

	// SettingListSeparator joins list-valued settings in key/value stores
	SettingListSeparator = "|"

	DefaultMatchPolicy = MatchExact
)

var (
	// Default Settings Values
	DefaultFreeMarkers      = []string{"free", "period 4", "period 5"}
	DefaultSubstringMarkers = []string{"free", "period"}
	DefaultPeriodLabels     = []string{"Period 1", "Period 2", "Period 3", "Period 4", "Period 5"}
	DefaultDayOrder         = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	DefaultWeekOrder        = []string{"Week 1", "Week 2"}

	// KnownColors are the color tags the original data uses
	KnownColors = []string{"blue", "darkblue", "green", "darkgreen", "red", "darkred", "yellow", "orange", "purple", "pink", "teal", "grey"}
)
