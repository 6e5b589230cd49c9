package config

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig sert au flux mobile : l'application Expo obtient un code
// d'autorisation et nous l'échange ici contre un token.
func GoogleOAuthConfig() *oauth2.Config {
	redirect := os.Getenv("GOOGLE_MOBILE_REDIRECT_URL")
	if redirect == "" {
		redirect = "vitrine://auth/callback"
	}
	return &oauth2.Config{
		RedirectURL:  redirect,
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
