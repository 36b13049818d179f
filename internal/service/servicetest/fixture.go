// Package servicetest holds shared fixtures for service tests.
package servicetest

import (
	"context"
	"sync"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
)

var (
	Brand           = identity.Identity{UserID: "user_brand1", Email: "brand1@example.com", Name: "Acme Cosmetics", Role: identity.RoleBrand}
	OtherBrand      = identity.Identity{UserID: "user_brand2", Email: "brand2@example.com", Name: "Globex", Role: identity.RoleBrand}
	Influencer      = identity.Identity{UserID: "user_inf1", Email: "inf1@example.com", Name: "Deniz", Role: identity.RoleInfluencer}
	OtherInfluencer = identity.Identity{UserID: "user_inf2", Email: "inf2@example.com", Name: "Ece", Role: identity.RoleInfluencer}
	ThirdInfluencer = identity.Identity{UserID: "user_inf3", Email: "inf3@example.com", Name: "Mert", Role: identity.RoleInfluencer}
	Admin           = identity.Identity{UserID: "user_admin", Email: "admin@example.com", Name: "Ops", Role: identity.RoleAdmin}
)

// Delivery is one call observed by RecordingNotifier.
type Delivery struct {
	UserID string
	Role   identity.Role
	Msg    notification.Message
}

// RecordingNotifier is a notification.Notifier that keeps every call.
type RecordingNotifier struct {
	mu         sync.Mutex
	deliveries []Delivery
}

func (r *RecordingNotifier) Notify(ctx context.Context, userID string, msg notification.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, Delivery{UserID: userID, Msg: msg})
}

func (r *RecordingNotifier) NotifyRole(ctx context.Context, role identity.Role, msg notification.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, Delivery{Role: role, Msg: msg})
}

// ToUser returns the message types sent to userID, in order.
func (r *RecordingNotifier) ToUser(userID string) []notification.NotificationType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.NotificationType
	for _, d := range r.deliveries {
		if d.UserID == userID {
			out = append(out, d.Msg.Type)
		}
	}
	return out
}

// ToRole returns the message types broadcast to role, in order.
func (r *RecordingNotifier) ToRole(role identity.Role) []notification.NotificationType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.NotificationType
	for _, d := range r.deliveries {
		if d.Role == role {
			out = append(out, d.Msg.Type)
		}
	}
	return out
}

// Last returns the most recent delivery.
func (r *RecordingNotifier) Last() (Delivery, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.deliveries) == 0 {
		return Delivery{}, false
	}
	return r.deliveries[len(r.deliveries)-1], true
}

func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
}
