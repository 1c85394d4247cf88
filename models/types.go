package models

import "time"

// Proposal status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Validation limits
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 4000
	MaxTimeOptions       = 20
	MaxVoterNameLength   = 200
)

// Request types

type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type TimeOptionInput struct {
	StartAt time.Time  `json:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty"`
}

type CreateProposalRequest struct {
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	TimeOptions []TimeOptionInput `json:"timeOptions"`
}

type SubmitVotesRequest struct {
	VoterID       *string  `json:"voterId,omitempty"`
	VoterName     *string  `json:"voterName,omitempty"`
	TimeOptionIDs []string `json:"timeOptionIds"`
}

// Response types

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName,omitempty"`
	PictureURL  *string `json:"pictureUrl,omitempty"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	ExpiresAtUTC time.Time    `json:"expiresAtUtc"`
	User         UserResponse `json:"user"`
}

type TimeOptionResponse struct {
	ID        string     `json:"id"`
	StartAt   time.Time  `json:"startAt"`
	EndAt     *time.Time `json:"endAt,omitempty"`
	VoteCount int        `json:"voteCount"`
}

type ProposalResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	Status      string               `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	ClosedAt    *time.Time           `json:"closedAt,omitempty"`
	PublicToken string               `json:"publicToken"`
	TimeOptions []TimeOptionResponse `json:"timeOptions"`
}

type ProposalSummary struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

type ListProposalsResponse struct {
	Items []ProposalSummary `json:"items"`
}

type VoterBallot struct {
	VoterID       string   `json:"voterId"`
	VoterName     *string  `json:"voterName,omitempty"`
	TimeOptionIDs []string `json:"timeOptionIds"`
}

type ProposalVotesResponse struct {
	ProposalID string        `json:"proposalId"`
	Voters     []VoterBallot `json:"voters"`
}

type PublicTimeOption struct {
	ID        string     `json:"id"`
	StartAt   time.Time  `json:"startAt"`
	EndAt     *time.Time `json:"endAt,omitempty"`
	VoteCount int        `json:"voteCount"`
	IsLeading bool       `json:"isLeading"`
}

type PublicPollResponse struct {
	ProposalID  string             `json:"proposalId"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	Status      string             `json:"status"`
	TimeOptions []PublicTimeOption `json:"timeOptions"`
}

type SubmitVotesResponse struct {
	VoterID string `json:"voterId"`
}

// Domain types

type User struct {
	ID            string
	GoogleSubject string
	Email         string
	DisplayName   *string
	PictureURL    *string
	CreatedAt     time.Time
	LastLoginAt   time.Time
}

type Proposal struct {
	ID                string
	OrganizerID       string
	Title             string
	Description       *string
	Status            string
	PublicTokenHash   string
	PublicTokenSealed string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ClosedAt          *time.Time
}

type TimeOption struct {
	ID         string
	ProposalID string
	StartAt    time.Time
	EndAt      *time.Time
	VoteCount  int
}

// ProposalDetail is a proposal with its options and live per-option counts.
type ProposalDetail struct {
	Proposal    Proposal
	TimeOptions []TimeOption
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
