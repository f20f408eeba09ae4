package domain

import "time"

// User is the stored user record. PasswordHash never leaves the service
// layer; handlers work with Identity instead.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string // argon2id encoded
	FirstName    string
	LastName     string
	CompanyName  string
	Location     string
	Sector       string
	Subsector    string
	CreatedAt    time.Time
}

// Identity is the verified-identity snapshot attached to authenticated
// requests. It carries no secret material.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Sector      string `json:"sector"`
	Subsector   string `json:"subsector"`
}

// Identity returns the public snapshot of a user.
func (u User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CompanyName: u.CompanyName,
		Location:    u.Location,
		Sector:      u.Sector,
		Subsector:   u.Subsector,
	}
}
