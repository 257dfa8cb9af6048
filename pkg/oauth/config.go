package oauth

// DefaultScope grants read/write access to repositories, their secrets and variables.
const DefaultScope = "repo"

// GitHubConfig holds GitHub OAuth app configuration.
type GitHubConfig struct {
	ClientID     string `env:"GITHUB_CLIENT_ID,required"`
	ClientSecret string `env:"GITHUB_CLIENT_SECRET,required"`
	Scope        string `env:"GITHUB_OAUTH_SCOPE" envDefault:"repo"`
	// RedirectURL defaults to BaseURL + "/auth/github/callback" when empty.
	RedirectURL string `env:"GITHUB_OAUTH_CALLBACK_URL"`
}
