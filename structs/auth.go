package structs

// TokenRequest carries the claims to sign. Any JSON object is accepted.
type TokenRequest map[string]interface{}
