package coach

import "github.com/julianstephens/habitlog/internal/models"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Conversation is the chat transcript shown in the coach view, oldest first.
// The first assistant message is an unprompted analysis, requested once.
type Conversation struct {
	Messages    []Message
	initialized bool
}

// NeedsInitialAnalysis reports whether the opening analysis is still due.
// Nothing is requested for an empty collection.
func (c *Conversation) NeedsInitialAnalysis(habits []models.Habit) bool {
	return !c.initialized && len(habits) > 0
}

// AddUser appends a question from the user.
func (c *Conversation) AddUser(content string) {
	c.Messages = append(c.Messages, Message{Role: RoleUser, Content: content})
}

// AddAssistant appends a coach reply and marks the opening analysis as done.
func (c *Conversation) AddAssistant(content string) {
	c.Messages = append(c.Messages, Message{Role: RoleAssistant, Content: content})
	c.initialized = true
}
