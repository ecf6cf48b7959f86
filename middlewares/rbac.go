package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"contesthub/config"
	"contesthub/db"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Resources and actions guarded by RBACMiddleware
const (
	ResourceUser    = "user"
	ResourceContest = "contest"
	ActionRead      = "read"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var defaultPolicies = [][]string{
	{"admin", ResourceUser, ActionRead},
	{"admin", ResourceContest, ActionRead},
}

// NewEnforcer builds the casbin enforcer. With the mongo policy store the
// rules are kept in the casbin_rule collection of the database in uri.
func NewEnforcer(cfg config.RBACConfig, uri string, log *zap.SugaredLogger) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create Casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if cfg.PolicyStore == config.PolicyStoreMongo {
		adapter, err := mongodbadapter.NewAdapter(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to create Casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create Casbin enforcer: %w", err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create Casbin enforcer: %w", err)
		}
	}

	for _, p := range defaultPolicies {
		added, err := enforcer.AddPolicy(p[0], p[1], p[2])
		if err != nil {
			return nil, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
		if added {
			log.Infof("Added default policy: %s can %s %s", p[0], p[2], p[1])
		}
	}
	return enforcer, nil
}

// RBACMiddleware looks up the caller's role and checks it against the
// enforcer. It must run after AuthMiddleware.
func RBACMiddleware(enforcer *casbin.Enforcer, users db.UserStore, log *zap.SugaredLogger, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(UserEmailKey)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found"})
				return
			}
			log.Errorf("RBACMiddleware: failed to load user %s: %v", email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			return
		}

		allowed, err := enforcer.Enforce(user.Role, resource, action)
		if err != nil {
			log.Errorf("Casbin enforce error: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			return
		}
		if !allowed {
			log.Infof("RBACMiddleware: permission denied for role=%q, resource=%s, action=%s", user.Role, resource, action)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// AllowAll is the role guard used when RBAC is disabled
func AllowAll() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}
