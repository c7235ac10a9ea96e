package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
)

type ctxKey int

const principalKey ctxKey = iota

// AuthMiddleware разрешает субъекта запроса. Аутентификацию выполняет
// внешний шлюз, сюда приходит заголовок X-User-Id; middleware проверяет,
// что пользователь существует, и кладет Principal в контекст.
type AuthMiddleware struct {
	users  usecase.UserRepository
	logger logger.Logger
}

func NewAuthMiddleware(users usecase.UserRepository, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{users: users, logger: logger}
}

// Resolve кладет Principal в контекст, если заголовок X-User-Id валиден.
// Анонимные запросы проходят дальше: публичные эндпоинты доступны всем,
// защищенные закрывает RequireAuth.
func (m *AuthMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-Id")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID < 1 {
			m.logger.Warnf("invalid X-User-Id header: %q", header)
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			m.logger.Warnf("failed to resolve principal %d: %v", userID, err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, domain.NewPrincipal(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth отклоняет запросы без разрешенного Principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := PrincipalFromCtx(r.Context()); err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromCtx возвращает субъекта запроса из контекста.
func PrincipalFromCtx(ctx context.Context) (domain.Principal, error) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, e.ErrUnauthenticated
	}
	return principal, nil
}
