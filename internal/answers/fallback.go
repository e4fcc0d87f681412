package answers

import "strings"

// fallbackAnswer returns a canned answer for the recurring application
// questions when no generated answer is available. The default is a
// polite deferral rather than a refusal so forms still validate.
func fallbackAnswer(question string) string {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "why") && (strings.Contains(q, "interested") || strings.Contains(q, "apply")):
		return "I'm excited about this role because it aligns perfectly with my experience in product management and my passion for building innovative solutions. The opportunity to contribute to your team's mission while growing my skills in this area is exactly what I'm looking for."
	case strings.Contains(q, "salary") || strings.Contains(q, "compensation"):
		return "I'm open to discussing compensation based on the full scope of the role and total compensation package. I'm confident we can find a mutually beneficial arrangement."
	case strings.Contains(q, "start") || strings.Contains(q, "available"):
		return "I can start within 2-3 weeks of accepting an offer, allowing time for a smooth transition."
	case strings.Contains(q, "visa") || strings.Contains(q, "authorization"):
		return "I am authorized to work in the EU (Germany) and am exploring opportunities that may offer visa sponsorship for other locations."
	default:
		return "I would be happy to discuss this further during the interview process."
	}
}
