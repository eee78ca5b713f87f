package common

import (
	"github.com/google/uuid"
)

// NewLinkID generates a unique link record ID with the "lnk_" prefix
func NewLinkID() string {
	return "lnk_" + uuid.New().String()
}

// NewScanID generates a unique scan result ID with the "scan_" prefix
func NewScanID() string {
	return "scan_" + uuid.New().String()
}

// NewRPCID generates a unique JSON-RPC call ID
func NewRPCID() string {
	return uuid.New().String()
}
