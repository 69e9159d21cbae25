package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const tokenTTL = 12 * time.Hour

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Service struct {
	db     *pgxpool.Pool
	secret string
}

func NewService(db *pgxpool.Pool, secret string) *Service {
	return &Service{db: db, secret: secret}
}

// Login verifies the bcrypt password hash for username and issues a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	var user User
	var hash string
	err := s.db.QueryRow(ctx, `
    SELECT id, username, password
    FROM users
    WHERE username = $1
  `, username).Scan(&user.ID, &user.Username, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := IssueToken(s.secret, user)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func IssueToken(secret string, user User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"uid": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses the token and returns the subject username.
func VerifyToken(secret, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("missing subject")
	}
	return sub, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
