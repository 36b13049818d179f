package fixtures

import (
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

func strPtr(s string) *string { return &s }

// ==========================================
// DEMO ACCOUNTS
// ==========================================

// Account is a user registered in the directory, with the influencer
// profile id for influencer accounts.
type Account struct {
	Identity  identity.Identity
	ProfileID *string
}

// Registrar accepts directory entries. The memory store satisfies it.
type Registrar interface {
	PutUser(id identity.Identity, profileID *string)
}

// GetDemoAccounts returns one admin, two brands and two influencers for
// local runs against the memory store.
func GetDemoAccounts() []Account {
	return []Account{
		{Identity: identity.Identity{UserID: "user_demo_admin", Email: "admin@flulance.local", Name: "Flulance Ops", Role: identity.RoleAdmin}},
		{Identity: identity.Identity{UserID: "user_demo_brand1", Email: "brand@flulance.local", Name: "Acme Cosmetics", Role: identity.RoleBrand}},
		{Identity: identity.Identity{UserID: "user_demo_brand2", Email: "brand2@flulance.local", Name: "Northwind Apparel", Role: identity.RoleBrand}},
		{
			Identity:  identity.Identity{UserID: "user_demo_inf1", Email: "creator@flulance.local", Name: "Deniz Kaya", Role: identity.RoleInfluencer},
			ProfileID: strPtr("prof_demo_inf1"),
		},
		{
			Identity:  identity.Identity{UserID: "user_demo_inf2", Email: "creator2@flulance.local", Name: "Ece Arslan", Role: identity.RoleInfluencer},
			ProfileID: strPtr("prof_demo_inf2"),
		},
	}
}

// SeedDemoAccounts registers every demo account and returns how many it added.
func SeedDemoAccounts(r Registrar) int {
	accounts := GetDemoAccounts()
	for _, a := range accounts {
		r.PutUser(a.Identity, a.ProfileID)
	}
	return len(accounts)
}
