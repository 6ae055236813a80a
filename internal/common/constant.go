// Package common contains shared constants and sentinel errors used across
// Luggify components.
package common

// DateLayout is the wire and storage format of trip dates (ISO YYYY-MM-DD).
const DateLayout = "2006-01-02"

// OwnerIDHeaderName is the optional header the client stamps on outbound
// requests so the backend can attribute them to a device owner.
const OwnerIDHeaderName = "X-Owner-Id"
