package application

// authorizeOwner is the single ownership check applied at the top of every
// mutating operation, before any side effect. actorID is the authenticated
// caller, ownerID the user recorded on the resource.
func authorizeOwner(actorID, ownerID string) error {
	if actorID == "" || actorID != ownerID {
		return ErrUnauthorized
	}
	return nil
}

// scopeRead gates reads the same way but reports a mismatch as not-found, so
// probing ids never reveals whether another user's resource exists.
func scopeRead(actorID, ownerID string) error {
	if actorID == "" || actorID != ownerID {
		return ErrNotFound
	}
	return nil
}
