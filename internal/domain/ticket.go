package domain

import "time"

// TicketCategory enumerates supported request categories.
type TicketCategory string

const (
	CategoryTechnicalSupport TicketCategory = "Technical Support"
	CategoryBillingPayment   TicketCategory = "Billing & Payment"
	CategoryGeneralInquiry   TicketCategory = "General Inquiry"
	CategoryFeatureRequest   TicketCategory = "Feature Request"
)

// TicketStatus enumerates lifecycle states. Any in-enum value may be set by a
// permitted caller; there is no enforced transition graph.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "Low"
	TicketPriorityMedium   TicketPriority = "Medium"
	TicketPriorityHigh     TicketPriority = "High"
	TicketPriorityCritical TicketPriority = "Critical"
)

// ValidCategory reports whether the category is enumerated.
func ValidCategory(c TicketCategory) bool {
	switch c {
	case CategoryTechnicalSupport, CategoryBillingPayment, CategoryGeneralInquiry, CategoryFeatureRequest:
		return true
	}
	return false
}

// ValidStatus reports whether the status is enumerated.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether the priority is enumerated.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is a support request filed by a requester.
type Ticket struct {
	ID              string
	RequesterID     string
	Category        TicketCategory
	Status          TicketStatus
	Priority        TicketPriority
	AssigneeID      *string
	Description     string
	ResolutionNotes string
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
