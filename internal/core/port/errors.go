package port

import "errors"

// ErrServiceKey marks an auth-class rejection by the data portal
// (unregistered, expired or quota-blocked service key). Retrying cannot help,
// callers must abort the whole run.
var ErrServiceKey = errors.New("service key rejected by data portal")
