package auth

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// LegacyCodec reproduces the original wire format: the claims as
// base64 of a JSON object, unsigned. Any holder can forge a token, so
// this codec exists only for compatibility with existing clients.
// Access tokens carry the username, refresh tokens do not, and neither
// carries a kind marker, so Verify cannot tell the two apart.
type LegacyCodec struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewLegacyCodec(accessTTL, refreshTTL time.Duration) *LegacyCodec {
	return &LegacyCodec{
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type legacyPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Exp      int64  `json:"exp"`
}

func (c *LegacyCodec) Issue(userID, username string, kind Kind) (string, time.Time, error) {
	payload := legacyPayload{
		UserID: userID,
	}

	var expiresAt time.Time
	switch kind {
	case KindAccess:
		payload.Username = username
		expiresAt = time.Now().Add(c.accessTTL)
	case KindRefresh:
		expiresAt = time.Now().Add(c.refreshTTL)
	default:
		return "", time.Time{}, ErrTokenInvalid
	}
	payload.Exp = expiresAt.Unix()

	data, err := json.Marshal(payload)
	if err != nil {
		return "", time.Time{}, err
	}
	return base64.StdEncoding.EncodeToString(data), expiresAt, nil
}

func (c *LegacyCodec) Verify(token string, _ Kind) (*Claims, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	var payload legacyPayload
	err = json.Unmarshal(data, &payload)
	if err != nil || payload.UserID == "" || payload.Exp == 0 {
		return nil, ErrTokenInvalid
	}

	expiresAt := time.Unix(payload.Exp, 0)
	if time.Now().After(expiresAt) {
		return nil, ErrTokenExpired
	}

	return &Claims{
		UserID:    payload.UserID,
		Username:  payload.Username,
		ExpiresAt: expiresAt,
	}, nil
}
