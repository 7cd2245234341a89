package constants

// NATS Subjects
const (
	// Donation lifecycle
	SubjectDonationCreated = "donation.created"

	// Payment outcomes
	SubjectPaymentCompleted = "payment.completed"
	SubjectPaymentFailed    = "payment.failed"
	SubjectPaymentExpired   = "payment.expired"
	SubjectPaymentCancelled = "payment.cancelled"
)
