package types

const (
	MsgMissingFields  = "Missing required fields"
	MsgInvalidRequest = "Invalid request"
	MsgDuplicateUser  = "Username or email already exists"
)
