package domain

import "strings"

// Subject is a canonical subject tag. The set is closed: every course and
// every normalized query carries one of the values below.
type Subject string

const (
	SubjectHealth                Subject = "health"
	SubjectInformationTechnology Subject = "information-technology"
	SubjectMathAndLogic          Subject = "math-and-logic"
	SubjectArtsAndHumanities     Subject = "arts-and-humanities"
	SubjectSocialSciences        Subject = "social-sciences"
	SubjectLanguageLearning      Subject = "language-learning"
	SubjectComputerScience       Subject = "computer-science"
	SubjectDataScience           Subject = "data-science"
	SubjectProjectManagement     Subject = "project-management"
	SubjectDesign                Subject = "design"
	SubjectMarketing             Subject = "marketing"
	SubjectBusiness              Subject = "business"
	SubjectOther                 Subject = "other"
)

var allSubjects = []Subject{
	SubjectHealth,
	SubjectInformationTechnology,
	SubjectMathAndLogic,
	SubjectArtsAndHumanities,
	SubjectSocialSciences,
	SubjectLanguageLearning,
	SubjectComputerScience,
	SubjectDataScience,
	SubjectProjectManagement,
	SubjectDesign,
	SubjectMarketing,
	SubjectBusiness,
	SubjectOther,
}

// AllSubjects returns every canonical tag, "other" last.
func AllSubjects() []Subject {
	out := make([]Subject, len(allSubjects))
	copy(out, allSubjects)
	return out
}

func (s Subject) Valid() bool {
	for _, v := range allSubjects {
		if v == s {
			return true
		}
	}
	return false
}

// Label is the space separated form used in indexed text ("computer science").
func (s Subject) Label() string {
	return strings.ReplaceAll(string(s), "-", " ")
}

func (s Subject) String() string { return string(s) }
