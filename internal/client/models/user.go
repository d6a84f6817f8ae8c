package models

// User is the auth service's public view of an account.
type User struct {
	ID                  string  `json:"id,omitempty"`
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	FullName            string  `json:"full_name,omitempty"`
	IsActive            bool    `json:"is_active"`
	AccountType         string  `json:"account_type,omitempty"`
	HousingSize         int     `json:"housing_size,omitempty"`
	BudgetPref          float64 `json:"budget_pref,omitempty"`
	DietaryPref         string  `json:"dietary_pref,omitempty"`
	DietaryRestrictions string  `json:"dietary_restrictions,omitempty"`
	Location            string  `json:"location,omitempty"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}
