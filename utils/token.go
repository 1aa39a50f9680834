package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

type JwtCustomClaim struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

const devJwtSecret = "GoodLand-POS-Secret"

var ErrJwtSecretMissing = errors.New("API_SECRET must be set in production")

func getJwtSecret() []byte {
	secret := strings.TrimSpace(os.Getenv("API_SECRET"))
	if secret == "" {
		return []byte(devJwtSecret)
	}
	return []byte(secret)
}

// CheckJwtSecret reports whether tokens would be signed with the built-in
// development secret. In production that is an error.
func CheckJwtSecret(production bool) (usingDevSecret bool, err error) {
	if strings.TrimSpace(os.Getenv("API_SECRET")) != "" {
		return false, nil
	}
	if production {
		return true, ErrJwtSecretMissing
	}
	return true, nil
}

func tokenLifespan() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil || hours <= 0 {
		hours = 12
	}
	return time.Duration(hours) * time.Hour
}

func JwtGenerate(username string, role string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &JwtCustomClaim{
		Username: username,
		Role:     role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenLifespan()).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})
	return t.SignedString(getJwtSecret())
}

func JwtValidate(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &JwtCustomClaim{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("there's a problem with the signing method")
		}
		return getJwtSecret(), nil
	})
}
