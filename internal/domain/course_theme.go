package domain

// CourseTheme is the display color family for a course
type CourseTheme string

const (
	ThemeBlue    CourseTheme = "blue"
	ThemeGreen   CourseTheme = "green"
	ThemeOrange  CourseTheme = "orange"
	ThemeRed     CourseTheme = "red"
	ThemeIndigo  CourseTheme = "indigo"
	ThemeYellow  CourseTheme = "yellow"
	ThemeDefault CourseTheme = "gray"
)

// ThemeForCourse maps a course name to its display theme, falling back to ThemeDefault
func ThemeForCourse(name string) CourseTheme {
	switch name {
	case "FIN 1":
		return ThemeBlue
	case "TOM":
		return ThemeGreen
	case "FRC":
		return ThemeOrange
	case "MKT":
		return ThemeRed
	case "LEAD":
		return ThemeIndigo
	case "STRAT":
		return ThemeYellow
	default:
		return ThemeDefault
	}
}
