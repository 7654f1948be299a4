package assistant

import (
	"fmt"
	"strings"
)

// CasePrompt asks for a summary of an Indian judgment. year may be empty.
func CasePrompt(name, year string) string {
	p := fmt.Sprintf("Please provide information on the Indian case law titled '%s'", strings.TrimSpace(name))
	if y := strings.TrimSpace(year); y != "" {
		p += " from the year " + y
	} else {
		p += " (if year is unknown, provide the most relevant match)"
	}
	return p + ". Include a summary, key judgment points, related case with relevant citations and legal interpretations if available."
}

const provisionTemplate = `Regarding the legal provision for '%s' under Indian law:

Provide the following information formatted clearly using Markdown, suitable for direct use in Notion notes. Do *not* include any conversational text, introductory phrases, or concluding remarks. Output *only* the structured information requested below:

### **Act and Section:**
[Specify the full Act name and relevant Section number(s) here]

### **Detailed Notes:**
[Provide a detailed notes of the legal provision.]

### **Key Aspects:**
* [Explain the first key aspect or element]
* [Explain the second key aspect or element]
* [Add more bullet points as necessary for other key aspects]

### **Relevant Case Laws:**
* [Relevant case law number 1 with a brief summary note]
* [Relevant case law number 2 with a brief summary note]
* [Add more bullet points as necessary for other relevant case laws]
`

// ProvisionPrompt asks for structured Markdown notes on a statutory provision.
func ProvisionPrompt(term string) string {
	return fmt.Sprintf(provisionTemplate, strings.TrimSpace(term))
}
