package contact

import "fmt"

// SuccessBanner is shown after a submission was accepted.
func SuccessBanner(ownerEmail string) string {
	return fmt.Sprintf("Message sent! I'll reply within 24 hours at %s", ownerEmail)
}

// ErrorBanner is shown for any transport or server failure.
func ErrorBanner(ownerEmail string) string {
	return fmt.Sprintf("Failed to send. Email me directly: %s", ownerEmail)
}
