package values

import "fmt"

// Handle is an opaque platform handle: a module/process instance or a
// loaded image.
type Handle uintptr

// SystemHandle is the "no module" handle used for OS-supplied resources.
const SystemHandle Handle = 0

// IsNull returns true for the zero handle.
func (h Handle) IsNull() bool {
	return h == 0
}

// String returns the handle in hex.
func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}
