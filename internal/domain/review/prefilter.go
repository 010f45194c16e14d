package review

import "strings"

// RefusalMessage is returned verbatim for conversational input.
const RefusalMessage = "I only review code. Please provide programming code for analysis."

var triggerPhrases = []string{
	"what is", "how to", "explain", "tell me", "can you", "please help",
	"i need", "i want", "hello", "hi there", "good morning",
}

// TriggerPhrases returns a copy of the phrases that mark input as conversational.
func TriggerPhrases() []string {
	out := make([]string, len(triggerPhrases))
	copy(out, triggerPhrases)
	return out
}

// IsConversational reports whether text looks like a chat message rather than code.
// It is a plain substring match on the lower-cased input, so a comment such as
// "// explain this" inside real code is rejected too.
func IsConversational(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range triggerPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
