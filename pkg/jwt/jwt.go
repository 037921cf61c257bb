package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios del servicio.
// El token lo emite el servicio de sesión (fuera de este repo); aquí solo se
// valida y se extrae la identidad del actor. Role viaja en el token para
// diagnóstico, pero la autorización del ledger SIEMPRE reconsulta el
// directorio de personal (rol y estado activo pueden cambiar tras la emisión).
type Claims struct {
	jwt.RegisteredClaims
	ActorID string `json:"actor_id"`
	UnitID  string `json:"unit_id"`
	Role    string `json:"role"` // "admin" | "gerente" | "bodeguero" | "vendedor"
}

// Generate genera un token HS256 con actorID, unitID y role.
// Lo usan los tests y herramientas de operación; el flujo productivo emite
// tokens en el servicio de sesión con el mismo secreto.
func Generate(secret, actorID, unitID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		ActorID: actorID,
		UnitID:  unitID,
		Role:    role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve actorID, unitID y role.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (actorID, unitID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	return claims.ActorID, claims.UnitID, claims.Role, nil
}
