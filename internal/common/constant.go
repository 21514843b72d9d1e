package common

// LocalOwnerKey is the owner key under which records live while no user is
// authenticated. Records created under it are never uploaded; after login the
// authenticated user id becomes the owner key for new writes.
const LocalOwnerKey = "local"

// AuthHeaderName is the HTTP header that carries the bearer token on
// requests to the sync backend.
const AuthHeaderName = "Authorization"
