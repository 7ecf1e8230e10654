package output

// MessageKey identifies a translatable message.
type MessageKey string

const (
	KeyJoin                MessageKey = "notify.join"
	KeyInviteAccepted      MessageKey = "notify.invite.accepted"
	KeyInviteDeclined      MessageKey = "notify.invite.declined"
	KeyCompletionSubmitted MessageKey = "notify.completion.submitted"
)

// NotificationKeys lists every message the services send. Each catalog must
// define all of them.
var NotificationKeys = []MessageKey{
	KeyJoin,
	KeyInviteAccepted,
	KeyInviteDeclined,
	KeyCompletionSubmitted,
}

// Translator renders notification texts for a locale.
type Translator interface {
	// T renders the message identified by key. data fills template
	// placeholders and may be nil. Unknown keys render as the key itself.
	T(locale string, key MessageKey, data map[string]any) string
}
