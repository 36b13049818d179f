package match

import (
	"context"
	"time"
)

// MatchRepository - interface for matches table
type MatchRepository interface {
	// Create returns ErrMatchAlreadyExists when the source already produced
	// a match.
	Create(ctx context.Context, m Match) (Match, error)
	GetByID(ctx context.Context, id string) (Match, error)
	// List methods return newest first.
	ListByBrand(ctx context.Context, brandUserID string) ([]Match, error)
	ListByInfluencer(ctx context.Context, influencerUserID string) ([]Match, error)
	ListAll(ctx context.Context) ([]Match, error)
	// MarkCompleted flips active to completed. It returns ErrMatchNotActive
	// when the match was no longer active.
	MarkCompleted(ctx context.Context, id, completedBy string, at time.Time) error
}

// MessageRepository - interface for match_messages table
type MessageRepository interface {
	Create(ctx context.Context, msg Message) (Message, error)
	// ListByMatch returns oldest first.
	ListByMatch(ctx context.Context, matchID string) ([]Message, error)
}
