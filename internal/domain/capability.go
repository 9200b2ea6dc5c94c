package domain

import "fmt"

// Subject is a teaching subject a wizard can offer and a job can require
type Subject string

const (
	SubjectMath        Subject = "Math"
	SubjectPhysics     Subject = "Physics"
	SubjectChemistry   Subject = "Chemistry"
	SubjectBiology     Subject = "Biology"
	SubjectHistory     Subject = "History"
	SubjectGeography   Subject = "Geography"
	SubjectLiterature  Subject = "Literature"
	SubjectProgramming Subject = "Programming"
	SubjectMusic       Subject = "Music"
	SubjectArt         Subject = "Art"
)

var subjects = map[Subject]struct{}{
	SubjectMath:        {},
	SubjectPhysics:     {},
	SubjectChemistry:   {},
	SubjectBiology:     {},
	SubjectHistory:     {},
	SubjectGeography:   {},
	SubjectLiterature:  {},
	SubjectProgramming: {},
	SubjectMusic:       {},
	SubjectArt:         {},
}

func (s Subject) IsValid() bool {
	_, ok := subjects[s]
	return ok
}

func ParseSubject(raw string) (Subject, error) {
	s := Subject(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown subject %q", raw)
	}
	return s, nil
}

// Language is a spoken language a wizard can teach in
type Language string

const (
	LanguageEnglish    Language = "English"
	LanguageSpanish    Language = "Spanish"
	LanguageFrench     Language = "French"
	LanguageGerman     Language = "German"
	LanguagePortuguese Language = "Portuguese"
	LanguageItalian    Language = "Italian"
	LanguageChinese    Language = "Chinese"
	LanguageJapanese   Language = "Japanese"
)

var languages = map[Language]struct{}{
	LanguageEnglish:    {},
	LanguageSpanish:    {},
	LanguageFrench:     {},
	LanguageGerman:     {},
	LanguagePortuguese: {},
	LanguageItalian:    {},
	LanguageChinese:    {},
	LanguageJapanese:   {},
}

func (l Language) IsValid() bool {
	_, ok := languages[l]
	return ok
}

func ParseLanguage(raw string) (Language, error) {
	l := Language(raw)
	if !l.IsValid() {
		return "", fmt.Errorf("unknown language %q", raw)
	}
	return l, nil
}

// ParseSubjects parses every entry, failing on the first unknown one
func ParseSubjects(raw []string) ([]Subject, error) {
	out := make([]Subject, 0, len(raw))
	for _, r := range raw {
		s, err := ParseSubject(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseLanguages parses every entry, failing on the first unknown one
func ParseLanguages(raw []string) ([]Language, error) {
	out := make([]Language, 0, len(raw))
	for _, r := range raw {
		l, err := ParseLanguage(r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func HasSubject(set []Subject, s Subject) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func HasLanguage(set []Language, l Language) bool {
	for _, v := range set {
		if v == l {
			return true
		}
	}
	return false
}

func SubjectStrings(set []Subject) []string {
	out := make([]string, len(set))
	for i, s := range set {
		out[i] = string(s)
	}
	return out
}

func LanguageStrings(set []Language) []string {
	out := make([]string, len(set))
	for i, l := range set {
		out[i] = string(l)
	}
	return out
}
