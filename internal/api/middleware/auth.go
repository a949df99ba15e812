package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

const (
	// HeaderUserID заголовок с ID пользователя (режим без JWT, для внутренних вызовов и разработки)
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя в режиме без JWT
	HeaderUserRole = "X-User-Role"

	RoleAdmin = "admin"

	// QueryToken параметр с JWT для websocket-подключений: браузер не передаёт Authorization при upgrade
	QueryToken = "token"

	msgMissingCredentials = "требуется авторизация"
	msgInvalidToken       = "недействительный токен"
	msgAdminOnly          = "доступно только администратору"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

type actorKey struct{}

// AuthOptions параметры аутентификации
type AuthOptions struct {
	JWTSecret           string
	AllowHeaderFallback bool
	// TrustRoleHeader разрешает X-User-Role в режиме без JWT. Без него такой пользователь никогда не admin
	TrustRoleHeader bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer JWT (HS256, claims sub и role) и кладёт domain.Actor в контекст.
// При AllowHeaderFallback запрос без Authorization принимается по заголовку X-User-ID
func Auth(opts AuthOptions, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" && websocket.IsWebSocketUpgrade(r) {
				if tok := r.URL.Query().Get(QueryToken); tok != "" {
					header = "Bearer " + tok
				}
			}

			var (
				actor domain.Actor
				err   error
			)
			switch {
			case strings.HasPrefix(header, "Bearer "):
				actor, err = parseToken(strings.TrimPrefix(header, "Bearer "), opts.JWTSecret)
				if err != nil {
					logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
			case opts.AllowHeaderFallback && r.Header.Get(HeaderUserID) != "":
				actor = domain.Actor{
					UserID:  r.Header.Get(HeaderUserID),
					IsAdmin: opts.TrustRoleHeader && strings.EqualFold(r.Header.Get(HeaderUserRole), RoleAdmin),
				}
			default:
				logger.Warn("%s %s - Missing credentials", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingCredentials)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingCredentials)
			return
		}
		if !actor.IsAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor кладёт пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает пользователя, установленного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok && actor.UserID != ""
}

func parseToken(raw, secret string) (domain.Actor, error) {
	if secret == "" {
		return domain.Actor{}, errors.New("jwt secret is not configured")
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, err
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return domain.Actor{}, errors.New("invalid claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Actor{}, errors.New("missing sub claim")
	}

	role, _ := claims["role"].(string)
	return domain.Actor{UserID: sub, IsAdmin: strings.EqualFold(role, RoleAdmin)}, nil
}
