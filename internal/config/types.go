package config

// Config holds all startup configuration. Built once in main and passed
// explicitly to every component that needs it.
type Config struct {
	DatabaseURL        string
	JWTSecret          string
	SessionSecret      string
	GoogleClientID     string
	GoogleClientSecret string
	GithubClientID     string
	GithubClientSecret string
	BaseURL            string
	FrontendURL        string
	Environment        string
}
