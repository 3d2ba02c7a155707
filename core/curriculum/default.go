package curriculum

var (
	years    = []string{"1ro", "2do", "3ro", "4to", "5to", "6to"}
	sections = []string{"1ra", "2da"}

	basicYears = []string{"1ro", "2do", "3ro"}
	upperYears = []string{"4to", "5to", "6to"}

	subjectsByYear = map[string][]SubjectCode{
		"1ro": {"PLG", "MTM", "CNT", "CSC", "EFC", "ART", "ING", "CCD"},
		"2do": {"PLG", "MTM", "BLG", "FQA", "HIS", "GEO", "EFC", "ART", "ING", "CCD"},
		"3ro": {"PLG", "MTM", "BLG", "FQA", "HIS", "GEO", "EFC", "ART", "ING", "CCD"},
		"4to": {"LIT", "MCS", "BLG", "FIS", "QMC", "HIS", "GEO", "EFC", "ING", "SYA"},
		"5to": {"LIT", "MCS", "HIS", "GEO", "EFC", "ING", "POL", "ECO"},
		"6to": {"LIT", "MCS", "FIL", "ART", "EFC", "ING", "TPR"},
	}
)

// Default returns the static catalog of the school: every year level in both sections,
// the basic and upper cycles, and the language/math subject groups.
func Default() *Catalog {
	c := New()
	for _, year := range years {
		for _, section := range sections {
			_ = c.add(courseOf(year, section), subjectsByYear[year], true)
		}
	}
	c.setCycle(CycleBasic, coursesOf(basicYears)...)
	c.setCycle(CycleUpper, coursesOf(upperYears)...)
	c.setGroup(GroupLanguage, "PLG", "LIT")
	c.setGroup(GroupMath, "MTM", "MCS")
	return c
}

func courseOf(year, section string) CourseID {
	return NormalizeCourse(year + " " + section)
}

func coursesOf(yrs []string) []CourseID {
	ids := make([]CourseID, 0, len(yrs)*len(sections))
	for _, year := range yrs {
		for _, section := range sections {
			ids = append(ids, courseOf(year, section))
		}
	}
	return ids
}
