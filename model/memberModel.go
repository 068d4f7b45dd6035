// model/memberModel.go
package model

import "time"

type MemberStatus int

const (
	StatusRegular MemberStatus = 1
	StatusPremium MemberStatus = 2
	StatusGuest   MemberStatus = 3
)

func (s MemberStatus) Valid() bool {
	return s == StatusRegular || s == StatusPremium || s == StatusGuest
}

// Member composes a user identity rather than extending it; UserID points
// at the users row that owns login credentials.
type Member struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Status      MemberStatus `json:"status"`
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city"`
	Province    string       `json:"province"`
	LastRenewal time.Time    `json:"last_renewal"`
	AutoRenew   bool         `json:"auto_renew"`
}
