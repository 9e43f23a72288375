package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResumeClaims bind a resume token to one player name in one room.
type ResumeClaims struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	jwt.RegisteredClaims
}

// AuthService issues and validates resume tokens. A token lets a
// reconnecting client rejoin its room without re-sending the room
// password; the durable identity is still the player name.
type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// IssueResumeToken signs a token for the given room and player name.
func (s *AuthService) IssueResumeToken(roomID, playerName string) (string, error) {
	claims := &ResumeClaims{
		RoomID:     roomID,
		PlayerName: playerName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateResumeToken parses and verifies a resume token.
func (s *AuthService) ValidateResumeToken(tokenStr string) (*ResumeClaims, error) {
	claims := &ResumeClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
