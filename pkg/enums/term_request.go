package enums

import "fmt"

// RequestKind classifies a pending change request against the project glossary.
type RequestKind string

const (
	RequestKindPromote RequestKind = "promote"
	RequestKindAdd     RequestKind = "add"
	RequestKindEdit    RequestKind = "edit"
	RequestKindDelete  RequestKind = "delete"
)

var validRequestKinds = []RequestKind{
	RequestKindPromote,
	RequestKindAdd,
	RequestKindEdit,
	RequestKindDelete,
}

// String implements fmt.Stringer.
func (k RequestKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known RequestKind.
func (k RequestKind) IsValid() bool {
	for _, candidate := range validRequestKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseRequestKind converts raw input into a RequestKind.
func ParseRequestKind(value string) (RequestKind, error) {
	for _, candidate := range validRequestKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request kind %q", value)
}

// RequestStatus tracks the lifecycle of a change request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusRejected,
}

// String implements fmt.Stringer.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RequestStatus.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}
