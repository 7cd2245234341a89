package constants

// Redis key formats
const (
	// Transaction store
	KeyTransaction = "payment:transaction:%s" // Format: payment:transaction:{transaction_id}
)
