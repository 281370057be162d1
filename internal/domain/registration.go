package domain

// RegistrationStatus values. Only "Registered" is written today; the field is
// kept open-ended because stored records may carry other values.
const RegistrationStatusRegistered = "Registered"

// Registration is a student's declared intent to participate in an Activity.
// It is keyed by a self-reported roll number rather than a profile subject: a
// student who registers under two different roll strings fragments their own
// history. That is existing behavior and is preserved.
type Registration struct {
	ID RegistrationID

	// ActivityID references an Activity by id. The reference is not enforced
	// by the store; legacy records may carry an empty value.
	ActivityID ActivityID

	StudentName string
	StudentRoll string

	Status string

	RegisteredAt Timestamp
}
