package interp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/rtlog"
)

// TryAndCatch runs fn, recovering any *rterr.Error panic in place of the
// reference runtime's longjmp back to the nearest try_and_catch. It
// reports ok=false and the captured error on a runtime error, ok=true
// and a nil error on clean completion. A panic of any other type is not
// recovered: it is not a runtime error and should crash the process the
// way an unrecovered C signal would.
func TryAndCatch(fn func()) (ok bool, caught *rterr.Error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, isRuntimeErr := r.(*rterr.Error)
		if !isRuntimeErr {
			panic(r)
		}
		ok = false
		caught = err
		rtlog.Logger().Warn("runtime error caught at try_and_catch",
			zap.String("kind", string(err.Kind)),
			zap.String("message", err.Error()),
		)
	}()
	fn()
	return true, nil
}

// Report renders a caught error the way the reference runtime's
// try_and_catch prints its captured buffer on return.
func Report(caught *rterr.Error) string {
	if caught == nil {
		return ""
	}
	return fmt.Sprintf("%s\n", caught.Error())
}
