package orchestrator

import (
	"fmt"
	"strings"

	"github.com/hireflow-dev/hireflow/internal/recommend"
)

const greetingText = "Hello! I help companies find the right hiring package. " +
	"Tell me about your hiring needs: your industry, the roles you want to fill, and where."

// clarifyingQuestion names exactly the attributes still missing.
func clarifyingQuestion(missing []string) string {
	labels := make([]string, 0, len(missing))
	for _, m := range missing {
		switch m {
		case "industry":
			labels = append(labels, "your industry")
		case "roles":
			labels = append(labels, "the roles you want to fill")
		case "location":
			labels = append(labels, "the hiring location")
		default:
			labels = append(labels, m)
		}
	}

	var list string
	switch len(labels) {
	case 1:
		list = labels[0]
	case 2:
		list = labels[0] + " and " + labels[1]
	default:
		list = strings.Join(labels[:len(labels)-1], ", ") + ", and " + labels[len(labels)-1]
	}
	return fmt.Sprintf("Got it. To match you with the right package, could you tell me %s?", list)
}

func recommendationText(recs []recommend.Recommendation) string {
	if len(recs) == 0 {
		return "I don't have a package that fits those requirements yet. " +
			"Could you adjust the head count or tell me more about the roles?"
	}

	var b strings.Builder
	b.WriteString("Based on your requirements, here is what I recommend:\n")
	for i, r := range recs {
		fmt.Fprintf(&b, "%d. %s", i+1, r.Package.Name)
		if r.Package.Description != "" {
			fmt.Fprintf(&b, " - %s", r.Package.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString("Shall I put together a proposal for the top option?")
	return b.String()
}

func followUpText(intent Intent) string {
	if intent == IntentScheduling {
		return "Happy to set that up. I've noted your request for a call; " +
			"our team will reach out shortly to confirm a time."
	}
	return "Thanks! Your proposal is on record. " +
		"Let me know if you'd like to schedule a call or adjust anything."
}

func resetAcknowledgement(missing []string) string {
	if len(missing) == 0 {
		return "Understood, I've updated your requirements."
	}
	return "Understood, I've updated your requirements. " + clarifyingQuestion(missing)
}
