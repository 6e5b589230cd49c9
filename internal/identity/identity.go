package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionTTL s'aligne sur l'expiration des JWT émis par utils.GenerateJWT.
const SessionTTL = 24 * time.Hour

var ErrNoSession = errors.New("aucune session active")

// Provider résout l'identité de la session courante.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

type ctxKey string

const sessionIDKey ctxKey = "session_id"

// WithSessionID attache l'identifiant de session au contexte de la requête.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDKey).(string)
	return sid, ok && sid != ""
}

// SessionProvider stocke les sessions dans Redis : une clé session:<id> → userID.
// La déconnexion supprime la clé, ce qui invalide le JWT restant côté client.
type SessionProvider struct {
	rdb *redis.Client
}

func NewSessionProvider(rdb *redis.Client) *SessionProvider {
	return &SessionProvider{rdb: rdb}
}

// CreateSession ouvre une session pour un utilisateur et renvoie son id.
func (p *SessionProvider) CreateSession(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := p.rdb.Set(ctx, "session:"+sessionID, userID, SessionTTL).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// DestroySession ferme une session (logout).
func (p *SessionProvider) DestroySession(ctx context.Context, sessionID string) error {
	return p.rdb.Del(ctx, "session:"+sessionID).Err()
}

// CurrentUserID résout l'utilisateur de la session portée par le contexte.
func (p *SessionProvider) CurrentUserID(ctx context.Context) (string, error) {
	sessionID, ok := SessionIDFromContext(ctx)
	if !ok {
		return "", ErrNoSession
	}

	userID, err := p.rdb.Get(ctx, "session:"+sessionID).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
