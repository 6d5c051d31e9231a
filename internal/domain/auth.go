package domain

import "time"

// Token describes issued bearer token metadata. Tokens are stateless: nothing
// here is persisted, and validity is determined purely by signature and
// expiry. Role travels in the token; plan deliberately does not, so plan
// changes take effect without waiting for token expiry.
type Token struct {
	UserID    string
	TenantID  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
