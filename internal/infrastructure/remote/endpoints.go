package remote

// Relative API paths, joined to the configured base URL.
const (
	PathLogin          = "/auth/login"
	PathLogout         = "/auth/logout"
	PathRefresh        = "/auth/refresh"
	PathChangePassword = "/auth/change-password"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathVerifyEmail    = "/auth/verify-email"

	PathProfile = "/user/profile"
	PathAvatar  = "/user/avatar"

	PathLicense        = "/driver/license"
	PathProfilePicture = "/driver/profile-picture"
	PathOnboarding     = "/driver/onboarding"
	PathDriverInfo     = "/driver/info"

	PathStats    = "/dashboard/stats"
	PathActivity = "/dashboard/activity"
)
