package models

import (
	"time"

	"github.com/google/uuid"
)

// Ad statuses
const (
	AdStatusPending  = "pending"
	AdStatusActive   = "active"
	AdStatusRejected = "rejected"
	AdStatusExpired  = "expired"
)

// Valid status transitions: from -> []to. Moderation moves pending ads to
// active or rejected; active ads expire when their package runs out.
var ValidAdTransitions = map[string][]string{
	AdStatusPending:  {AdStatusActive, AdStatusRejected},
	AdStatusActive:   {AdStatusExpired, AdStatusRejected},
	AdStatusRejected: {},
	AdStatusExpired:  {},
}

func IsValidAdTransition(from, to string) bool {
	allowed, ok := ValidAdTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Image roles
const (
	ImageRoleGallery      = "gallery"
	ImageRoleVerification = "verification"
)

// Image review statuses, set by moderation only.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Verification roles. A complete verification set holds exactly one image
// per role.
const (
	VerificationRoleID     = "id"
	VerificationRoleSelfie = "selfie"
	VerificationRoleNote   = "note"
)

var VerificationRoles = []string{VerificationRoleID, VerificationRoleSelfie, VerificationRoleNote}

func IsValidVerificationRole(role string) bool {
	for _, r := range VerificationRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AdImage is one media asset attached to an ad or a draft. Before upload
// the URL points at a locally owned preview; after upload it is the
// object-store URL.
type AdImage struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	Role             string `json:"role"` // gallery / verification
	VerificationRole string `json:"verification_role,omitempty"`
	IsPrimary        bool   `json:"is_primary"`
	ReviewStatus     string `json:"review_status"`
}

type Advertisement struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	Status       string       `json:"status"`
	Location     LocationData `json:"location"`
	Details      DetailsData  `json:"details"`
	Images       []AdImage    `json:"images"`
	Booking      BookingData  `json:"booking"`
	Package      PackageData  `json:"package"`
	ContactEmail string       `json:"contact_email"`
	ContactPhone string       `json:"contact_phone"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	ExpiresAt    time.Time    `json:"expires_at"`
}
