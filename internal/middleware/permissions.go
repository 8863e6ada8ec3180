package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Action names the operations guarded by the permission gate.
type Action string

const (
	ActionAccountsRead      Action = "accounts:read"
	ActionAccountsWrite     Action = "accounts:write"
	ActionTransactionsRead  Action = "transactions:read"
	ActionTransactionsWrite Action = "transactions:write"
	ActionLedgerRead        Action = "ledger:read"
	ActionLedgerWrite       Action = "ledger:write"
	ActionInterestRun       Action = "interest:run"
)

// rolePermissions is the static role/action matrix. Role administration is an
// external collaborator; the core only asks yes/no at the boundary.
var rolePermissions = map[string]map[Action]bool{
	"admin": {
		ActionAccountsRead: true, ActionAccountsWrite: true,
		ActionTransactionsRead: true, ActionTransactionsWrite: true,
		ActionLedgerRead: true, ActionLedgerWrite: true,
		ActionInterestRun: true,
	},
	"operator": {
		ActionAccountsRead: true, ActionAccountsWrite: true,
		ActionTransactionsRead: true, ActionTransactionsWrite: true,
		ActionLedgerRead: true, ActionLedgerWrite: true,
	},
	"viewer": {
		ActionAccountsRead:     true,
		ActionTransactionsRead: true,
		ActionLedgerRead:       true,
	},
}

// CanPerform is the capability check consulted before each core operation.
func CanPerform(role string, action Action) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[action]
}

// RequirePermission aborts with 403 unless the actor's role allows action.
func RequirePermission(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c.Request.Context())
		if !ok || !CanPerform(role, action) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Permission denied",
				slog.String("role", role), slog.String("action", string(action)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Permission denied"})
			return
		}
		c.Next()
	}
}
