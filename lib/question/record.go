package question

import "time"

// column names of the canonical record, in interchange order
const (
	FieldCompanyName       = "company_name"
	FieldRoleName          = "role_name"
	FieldInterviewQuestion = "interview_question"
	FieldDifficulty        = "difficulty"
	FieldQuestionURL       = "question_url"
	FieldSource            = "source"
	FieldDateCollected     = "date_collected"
)

// Header is the exact column order of the CSV interchange format and of the
// warehouse insert.
var Header = []string{
	FieldCompanyName,
	FieldRoleName,
	FieldInterviewQuestion,
	FieldDifficulty,
	FieldQuestionURL,
	FieldSource,
	FieldDateCollected,
}

const (
	DifficultyEasy         = "Easy"
	DifficultyMedium       = "Medium"
	DifficultyHard         = "Hard"
	DifficultyNotSpecified = "Not Specified"
)

const (
	DefaultCompanyName = "Unknown"
	DefaultRoleName    = "Software Engineer"
	DefaultQuestion    = ""
	DefaultDifficulty  = DifficultyNotSpecified
	DefaultQuestionURL = ""
	DefaultSource      = "Unknown"
)

// DateLayout is how date_collected is rendered: local time, no zone.
const DateLayout = "2006-01-02 15:04:05"

// FormatDate renders t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Record is a canonical question record. No field is ever left unset once a
// Record comes out of a Normalizer.
type Record struct {
	CompanyName       string
	RoleName          string
	InterviewQuestion string
	Difficulty        string
	QuestionURL       string
	Source            string
	DateCollected     string
}

// Key identifies a logically unique record.
type Key struct {
	CompanyName       string
	InterviewQuestion string
}

func (r Record) Key() Key {
	return Key{
		CompanyName:       r.CompanyName,
		InterviewQuestion: r.InterviewQuestion,
	}
}

// Values returns the fields of the record in Header order.
func (r Record) Values() []string {
	return []string{
		r.CompanyName,
		r.RoleName,
		r.InterviewQuestion,
		r.Difficulty,
		r.QuestionURL,
		r.Source,
		r.DateCollected,
	}
}

// Raw is a record as a collector or a CSV reader produced it. An absent key
// and an empty or NA-like value are both treated as missing.
type Raw map[string]string
