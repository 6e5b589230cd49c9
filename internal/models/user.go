package models

type User struct {
	ID         string `json:"user_id" bson:"_id"`
	Name       string `json:"name,omitempty" bson:"name"`
	Email      string `json:"email" bson:"email"`
	Password   string `json:"-" bson:"password,omitempty"`
	Provider   string `json:"provider,omitempty" bson:"provider"`
	ProviderID string `json:"-" bson:"providerId,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
}
