package match

import (
	"io"
	"time"

	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

type MatchResponse struct {
	ID               string     `json:"match_id"`
	SourceType       string     `json:"source_type"`
	JobID            *string    `json:"job_id,omitempty"`
	BriefID          *string    `json:"brief_id,omitempty"`
	Title            string     `json:"job_title"`
	BrandUserID      string     `json:"brand_user_id"`
	BrandName        string     `json:"brand_name"`
	InfluencerUserID string     `json:"influencer_user_id"`
	InfluencerName   string     `json:"influencer_name"`
	AgreedPrice      *float64   `json:"agreed_price,omitempty"`
	Status           string     `json:"status"`
	CompletedBy      *string    `json:"completed_by,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToResponse(m Match) MatchResponse {
	m = Normalize(m)
	resp := MatchResponse{
		ID:               m.ID,
		SourceType:       string(m.SourceType),
		Title:            m.Title,
		BrandUserID:      m.BrandUserID,
		BrandName:        m.BrandName,
		InfluencerUserID: m.InfluencerUserID,
		InfluencerName:   m.InfluencerName,
		AgreedPrice:      m.AgreedPrice,
		Status:           string(m.Status),
		CompletedBy:      m.CompletedBy,
		CompletedAt:      m.CompletedAt,
		CreatedAt:        m.CreatedAt,
	}
	sourceID := m.SourceID
	if m.SourceType == SourceBrief {
		resp.BriefID = &sourceID
	} else {
		resp.JobID = &sourceID
	}
	return resp
}

func ToResponses(matches []Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, ToResponse(m))
	}
	return out
}

// Attachment is an uploaded file accompanying a chat message.
type Attachment struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type SendMessageRequest struct {
	Message    string      `json:"message"`
	Attachment *Attachment `json:"-"`
}

func (r *SendMessageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Message) && r.Attachment == nil {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message or attachment is required"})
	}
	if len(r.Message) > 5000 {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message must not exceed 5000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MessageResponse struct {
	ID            string    `json:"message_id"`
	MatchID       string    `json:"match_id"`
	SenderUserID  string    `json:"sender_user_id"`
	SenderName    string    `json:"sender_name"`
	Message       string    `json:"message"`
	AttachmentURL *string   `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToMessageResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		MatchID:       m.MatchID,
		SenderUserID:  m.SenderUserID,
		SenderName:    m.SenderName,
		Message:       m.Body,
		AttachmentURL: m.AttachmentURL,
		CreatedAt:     m.CreatedAt,
	}
}

func ToMessageResponses(msgs []Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ToMessageResponse(m))
	}
	return out
}
