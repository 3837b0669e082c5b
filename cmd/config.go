package cmd

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	StripeSecretKey string
	PushBaseURL     string
	PushAPIKey      string
	TrackBaseURL    string
	TrackAPIKey     string
}
