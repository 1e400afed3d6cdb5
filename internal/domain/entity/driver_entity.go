package entity

import "time"

// DriverOnboardingSubmission holds two opaque file references.
type DriverOnboardingSubmission struct {
	DriverLicense  string `json:"driverLicense"`
	ProfilePicture string `json:"profilePicture"`
}

type OnboardingResult struct {
	IsOnboardingComplete bool `json:"isOnboardingComplete"`
}

type DriverInfo struct {
	HasLicense        bool `json:"hasLicense"`
	HasProfilePicture bool `json:"hasProfilePicture"`
}

type AvatarUpload struct {
	AvatarURL string `json:"avatarUrl"`
}

type LicenseUpload struct {
	LicenseURL string `json:"licenseUrl"`
}

type PictureUpload struct {
	PictureURL string `json:"pictureUrl"`
}

// DashboardStats summarizes the driver's activity.
type DashboardStats struct {
	TotalRides int     `json:"totalRides"`
	Earnings   float64 `json:"earnings"`
	Rating     float64 `json:"rating"`
}

// Activity is one entry of the recent activity feed. Amount is optional.
type Activity struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	Date   time.Time `json:"date"`
	Amount *float64  `json:"amount,omitempty"`
}
