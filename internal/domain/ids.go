package domain

// SubjectID is the authenticated subject extracted from identity-provider claims
// (typically "sub"). We model it as an opaque identifier: its format is
// controlled by the IdP.
type SubjectID string

// ActivityID is an internal identifier for an activity record.
type ActivityID string

// RegistrationID is an internal identifier for a registration record.
type RegistrationID string
