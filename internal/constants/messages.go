package constants

// User-facing coach messages. These are shown verbatim in place of a reply.
const (
	CoachMissingKeyMessage = "API Key is missing. Please check your configuration."
	CoachFallbackMessage   = "Sorry, I'm having trouble connecting to the AI coach right now. Please try again later."
	CoachEmptyReplyMessage = "I couldn't generate a response at this moment."
	CoachNoHabitsMessage   = "Add some habits to start your AI coaching session."
)
