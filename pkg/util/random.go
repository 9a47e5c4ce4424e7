package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a human-readable order number,
// e.g. ORD-20250901-3f1a2b4c.
func GenerateOrderNumber() string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

// GenerateTransactionID builds a gateway transaction identifier.
func GenerateTransactionID(merchantID string) string {
	return fmt.Sprintf("%s-%s", merchantID, uuid.New().String())
}
