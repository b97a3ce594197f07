// Package models contains the data structures shared by the HRM client
// layers: the authenticated principal, the role set the backend knows
// about, and the records cached locally between sessions.
package models

// Role is one of the closed set of role tags assigned by the HRM backend.
type Role string

const (
	RoleEmployee    Role = "EMPLOYEE"
	RoleSubAdmin    Role = "SUBADMIN"
	RoleMasterAdmin Role = "MASTER_ADMIN"
)

// Principal is the authenticated user's identity record. It is owned by the
// session store while a session is active and serialized to local storage on
// every change.
type Principal struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Clone returns a copy so callers cannot mutate the store's value in place.
func (p *Principal) Clone() *Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// ResetUserType selects which role-specific password-reset endpoints apply.
// The backend exposes separate forgot-password routes for master admins and
// sub-admins, and the flow has to remember which one accepted the request.
type ResetUserType string

const (
	ResetUserMasterAdmin ResetUserType = "masteradmin"
	ResetUserSubAdmin    ResetUserType = "subadmin"
)
