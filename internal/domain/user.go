package domain

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// AuthUser is the identity extracted from a verified bearer token. It is
// passed explicitly into service calls; services re-fetch the canonical
// user record when they need more than the identity.
type AuthUser struct {
	ID    int64
	Email string
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
