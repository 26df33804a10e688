package core

// Owned is implemented by resources that can only be changed by their author.
type Owned interface {
	OwnerID() string
}

func IsOwner(resource Owned, requesterID string) bool {
	return requesterID != "" && resource.OwnerID() == requesterID
}
