package brief

import "errors"

var (
	ErrBriefNotFound         = errors.New("brief not found")
	ErrNotBriefOwner         = errors.New("not your brief")
	ErrBriefNotOpen          = errors.New("brief is not open")
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrAlreadyProposed       = errors.New("already submitted a proposal for this brief")
	ErrProposalProcessed     = errors.New("proposal already processed")
	ErrProposalBriefMismatch = errors.New("proposal does not belong to this brief")
)
