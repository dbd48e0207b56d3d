package typeindex

import "errors"

// ErrFormat indicates a persisted index that cannot be decoded or fails
// validation.
var ErrFormat = errors.New("typeindex: invalid index format")
