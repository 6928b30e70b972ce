package backend

import "fmt"

type ErrUnknownBackend struct {
	Backend string
}

func (e ErrUnknownBackend) Error() string {
	return fmt.Sprintf("unknown backend provided: %s", e.Backend)
}
