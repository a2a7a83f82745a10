package inquiryform

// Kind distinguishes neutral notices from failures.
type Kind int

const (
	KindInfo Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "info"
}

// Notification is a transient message for the user. The UI decides how long
// it stays on screen.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
}

var (
	MissingInformation = Notification{
		Kind:        KindError,
		Title:       "Missing Information",
		Description: "Please fill in all fields.",
	}
	SubmitSucceeded = Notification{
		Kind:        KindInfo,
		Title:       "Success!",
		Description: "We'll share 2 vetted profiles with you by Friday.",
	}
	SubmitFailed = Notification{
		Kind:        KindError,
		Title:       "Error",
		Description: "Failed to submit inquiry. Please try again.",
	}
)
