package domain

import (
	"regexp"
	"strings"
)

// Extraction patterns are deliberately loose: they scan free resume text for
// the first plausible match. Strict format checks happen later, when the
// interview controller asks the candidate to confirm or fill a field.
var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[\s-]?)?(\(?\d{2,4}\)?[\s-]?)?\d{6,10}`)
)

// Profile holds best-effort extracted contact fields. Absent fields are empty
// strings; extraction has no failure mode.
type Profile struct {
	Name  string
	Email string
	Phone string
}

func (p Profile) Missing() []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// ExtractProfile pulls name, email and phone out of raw resume text.
//
// The name heuristic assumes resumes lead with a header block: the line
// immediately above the first line containing an email or phone number is
// taken as the name. When no contact line is found, the first two words of
// the first non-empty line are used.
func ExtractProfile(rawText string) Profile {
	return Profile{
		Name:  findName(rawText),
		Email: emailPattern.FindString(rawText),
		Phone: strings.TrimSpace(phonePattern.FindString(rawText)),
	}
}

func findName(rawText string) string {
	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	for i, line := range lines {
		if i > 0 && (emailPattern.MatchString(line) || phonePattern.MatchString(line)) {
			return lines[i-1]
		}
	}
	words := strings.Fields(lines[0])
	if len(words) >= 2 {
		return words[0] + " " + words[1]
	}
	return words[0]
}
