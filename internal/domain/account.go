package domain

const (
	RoleClient   = "Client"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

type Account struct {
	ID        int64  `db:"account_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Hash      string `db:"password_hash"`
	Type      string `db:"account_type"`
	CreatedAt string `db:"created_at"`
}

// IsStaff reports whether the account may use the inventory admin pages.
func (a *Account) IsStaff() bool {
	return a != nil && (a.Type == RoleEmployee || a.Type == RoleAdmin)
}
