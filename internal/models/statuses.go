package models

type UserRole string
type WorkStatus string
type CollectionStatus string
type ReviewAction string
type TargetType string
type ReviewDecision string

const (
	UserRoleUser     UserRole = "user"
	UserRoleAdmin    UserRole = "admin"
	UserRoleMuseum   UserRole = "museum"
	UserRoleDesigner UserRole = "designer"

	WorkStatusSubmitted WorkStatus = "submitted"
	WorkStatusApproved  WorkStatus = "approved"
	WorkStatusRejected  WorkStatus = "rejected"
	WorkStatusWinner    WorkStatus = "winner"

	CollectionStatusDraft  CollectionStatus = "draft"
	CollectionStatusActive CollectionStatus = "active"
	CollectionStatusClosed CollectionStatus = "closed"

	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
	ReviewActionComment ReviewAction = "comment"

	TargetTypeWork       TargetType = "work"
	TargetTypeCollection TargetType = "collection"

	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
	DecisionAward   ReviewDecision = "award"
)

func (s WorkStatus) IsValid() bool {
	switch s {
	case WorkStatusSubmitted, WorkStatusApproved, WorkStatusRejected, WorkStatusWinner:
		return true
	}
	return false
}

func (s CollectionStatus) IsValid() bool {
	switch s {
	case CollectionStatusDraft, CollectionStatusActive, CollectionStatusClosed:
		return true
	}
	return false
}

func (t TargetType) IsValid() bool {
	return t == TargetTypeWork || t == TargetTypeCollection
}

func (d ReviewDecision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject || d == DecisionAward
}
