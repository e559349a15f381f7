package response_models

// ProfileChangeResponse reports which contact fields now await a code.
// When both flags are false the change committed immediately.
type ProfileChangeResponse struct {
	PendingEmail bool `json:"pending_email"`
	PendingPhone bool `json:"pending_phone"`
}
