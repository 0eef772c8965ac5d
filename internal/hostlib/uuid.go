package hostlib

import (
	"github.com/google/uuid"

	"github.com/thunklang/es3vm/internal/evaluator"
)

// installUUID wires a single free function, uuid(), returning a fresh
// random (v4) UUID string per call. Grounded on the teacher's own
// internal/modules UUID builtin — same library, same "one call, one
// random string" shape.
func installUUID(h evaluator.Host) {
	setGlobal(h, "uuid", h.NewFunction(func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		return uuid.NewString(), nil
	}, 0, "uuid", ""))
}
