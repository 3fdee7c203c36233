package domain

// DefaultAdminUsername and DefaultAdminPassword seed an empty account table.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// User models a staff account. Credential is nil for listings and for rows
// that carry no usable secret at all.
type User struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Credential Credential `json:"-"`
}

// CredentialSchema reports which password columns the account table has.
// Legacy deployments may carry either one, or both.
type CredentialSchema struct {
	Hashed    bool
	Plaintext bool
}

// Empty reports whether no credential column exists yet.
func (s CredentialSchema) Empty() bool {
	return !s.Hashed && !s.Plaintext
}

// LegacyCredential is a plaintext secret still waiting to be hashed.
type LegacyCredential struct {
	UserID   int64
	Username string
	Secret   string
}
