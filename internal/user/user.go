package user

// User maps to the `public.profiles` table. Password holds the bcrypt hash
// and is blanked before a user leaves the API.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// RoleAdmin is the only role the back-office distinguishes; rows live in the
// `user_roles` table.
const RoleAdmin = "admin"

// Capability is the authorization descriptor every gated surface consumes
// instead of re-querying the session and role tables itself.
type Capability struct {
	Authenticated bool `json:"authenticated"`
	IsAdmin       bool `json:"isAdmin"`
}
