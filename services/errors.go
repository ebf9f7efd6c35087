package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	// Not found
	ErrUserNotFound        = errors.New("user not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrParticipantNotFound = errors.New("participant registration not found")
	ErrMatchNotFound       = errors.New("match not found")

	// Conflicts
	ErrUserEmailConflict       = errors.New("email address is already in use")
	ErrUserDisplayNameConflict = errors.New("display name is already in use")
	ErrRegistrationConflict    = errors.New("user is already registered for this tournament")

	// Validation and business rules
	ErrValidationFailed                 = errors.New("validation failed")
	ErrTournamentFull                   = errors.New("tournament registration is full")
	ErrPasswordTooShort                 = errors.New("password must be at least 8 characters")
	ErrTournamentNameRequired           = errors.New("tournament name is required")
	ErrTournamentGameRequired           = errors.New("tournament game is required")
	ErrTournamentInvalidFormat          = errors.New("invalid tournament format provided")
	ErrTournamentInvalidStatus          = errors.New("invalid tournament status provided")
	ErrTournamentInvalidCapacity        = errors.New("tournament max participants must be positive")
	ErrTournamentInvalidDates           = errors.New("registration deadline must not be after start date")
	ErrRegistrationNotOpen              = errors.New("tournament is not open for registration")
	ErrMatchInvalidStatus               = errors.New("invalid match status provided")
	ErrMatchPlayerNotInTournament       = errors.New("player is not a participant of this tournament")
	ErrMatchWinnerNotAPlayer            = errors.New("winner must be one of the match players")
	ErrAvatarUnsupportedContentType     = errors.New("unsupported avatar content type")
	ErrAvatarStorageNotConfigured       = errors.New("avatar storage is not configured")
	ErrParticipantSeedMustBePositive    = errors.New("participant seed must be positive")
	ErrTournamentCapacityBelowEnrolment = errors.New("max participants cannot drop below current participant count")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
)
