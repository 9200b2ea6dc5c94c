package domain

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderLocal  Provider = "local"
)

// AuthPayload is the claim set carried by access tokens
type AuthPayload struct {
	UserID   string   `json:"sub"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	IsWizard bool     `json:"wizard"`
	Provider Provider `json:"provider"`
}

// Credentials identify a user at login. Which fields are set depends on the provider.
type Credentials struct {
	Provider    Provider
	Email       string
	Password    string
	ExternalUID string
}

type LoginResponse struct {
	Token string `json:"token"`
}
