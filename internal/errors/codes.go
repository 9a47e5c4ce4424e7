package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound       = "PRODUCT_NOT_FOUND"
	ProductOutOfStock     = "PRODUCT_OUT_OF_STOCK"
	ProductInvalidVariant = "PRODUCT_INVALID_VARIANT"

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"

	// ==================== Payments (PAYMENT_) ====================
	PaymentInvalidCard      = "PAYMENT_INVALID_CARD"
	PaymentDeclined         = "PAYMENT_DECLINED"
	PaymentAlreadyProcessed = "PAYMENT_ALREADY_PROCESSED"
	PaymentAborted          = "PAYMENT_ABORTED"

	// ==================== Coupons (COUPON_) ====================
	CouponNotFound  = "COUPON_NOT_FOUND"
	CouponExpired   = "COUPON_EXPIRED"
	CouponExhausted = "COUPON_EXHAUSTED"
	CouponMinAmount = "COUPON_MIN_AMOUNT"

	// ==================== Wishlist (WISHLIST_) ====================
	WishlistItemNotFound = "WISHLIST_ITEM_NOT_FOUND"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
