// Package common contains constants and sentinel errors shared by the
// PantryKeeper client and the auth server.
package common

// Slot names in the client's local key/value store.
const (
	SlotAccessToken    = "access_token"
	SlotRefreshToken   = "refresh_token"
	SlotFoodLogs       = "food_logs"
	SlotInventoryItems = "inventory_items"
	SlotUploadedImages = "uploaded_images"
)

// HTTP surface shared by client and server.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	BearerScheme        = "Bearer"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
