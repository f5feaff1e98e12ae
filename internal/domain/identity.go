package domain

// Identity is the subject carried by a bearer token. It is resolved from
// the token alone, without a store lookup.
type Identity struct {
	ID    int64
	Email string
}
