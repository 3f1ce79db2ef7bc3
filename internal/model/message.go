package model

// Message is a validation or navigation outcome shown next to the field it
// concerns. Field is empty for session-wide messages.
type Message struct {
	Level   string `json:"level"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// HasCritical reports whether any message blocks the triggering action.
func HasCritical(msgs []Message) bool {
	for _, m := range msgs {
		if m.Level == LevelCritical {
			return true
		}
	}
	return false
}

func Critical(code, field, text string) Message {
	return Message{Level: LevelCritical, Code: code, Field: field, Message: text}
}

func Warning(code, field, text string) Message {
	return Message{Level: LevelWarning, Code: code, Field: field, Message: text}
}
