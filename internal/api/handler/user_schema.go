package handler

// --- Request types ---

// createUserRequest carries a new account. RoleName is a pointer so an
// explicitly requested role is distinguishable from an omitted one; only super
// admin requests are honoured.
type createUserRequest struct {
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Password string  `json:"password"`
	RoleName *string `json:"roleName"`
}

// updateUserRequest is the admin-path update. Enabled is a pointer so an
// explicit false is applied rather than ignored.
type updateUserRequest struct {
	FullName string `json:"fullName"`
	Enabled  *bool  `json:"enabled"`
}

// updateMeRequest is the self-service update; empty fields stay untouched.
type updateMeRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}
