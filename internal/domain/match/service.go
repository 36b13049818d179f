package match

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

type MatchService interface {
	ListForUser(ctx context.Context, actor identity.Identity) ([]MatchResponse, error)
	GetMatch(ctx context.Context, actor identity.Identity, id string) (MatchResponse, error)
	// Complete may be called by either party while the match is active.
	Complete(ctx context.Context, actor identity.Identity, id string) (MatchResponse, error)
	AdminList(ctx context.Context, actor identity.Identity) ([]MatchResponse, error)

	// Polled chat
	ListMessages(ctx context.Context, actor identity.Identity, matchID string) ([]MessageResponse, error)
	SendMessage(ctx context.Context, actor identity.Identity, matchID string, req SendMessageRequest) (MessageResponse, error)
}
