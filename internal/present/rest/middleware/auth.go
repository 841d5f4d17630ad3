package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/present/rest/presenter"
)

var tracer = otel.Tracer("auth")

// AdminPrefix marks routes guarded by the admin secret instead of a credential.
const AdminPrefix = "/api/posts/admin"

type Resolver interface {
	Resolve(ctx context.Context, token, lookupKey string) (*domain.Identity, error)
}

type AuthMiddleware struct {
	resolver Resolver
}

func NewAuthMiddleware(resolver Resolver) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
	}
}

// IdentifyIdentity resolves the presented credential, if any, and stores the
// identity in the request context. A missing or unknown credential leaves
// the request anonymous.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, AdminPrefix) {
			return next(c)
		}

		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		token := c.Request().Header.Get(domain.CredentialHeader)
		if token != "" {
			lookupKey := c.Request().Header.Get(domain.LookupKeyHeader)
			identity, err := s.resolver.Resolve(ctx, token, lookupKey)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: Resolve failed"))
				return presenter.Error(c, err)
			}
			if identity != nil {
				ctx = context.WithValue(ctx, domain.RequesterCtxKey, identity)
				span.SetAttributes(attribute.Int64("RequesterId", identity.ID))
			}
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// Requester returns the identity stored by IdentifyIdentity, or nil.
func Requester(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(domain.RequesterCtxKey).(*domain.Identity)
	return identity
}
