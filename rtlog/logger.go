package rtlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	mu         sync.Mutex
)

// Logger returns the runtime's logger, defaulting to a no-op logger.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// SetLogger overrides the package-level logger. Call before any runtime
// operation that logs; intended for host wiring at boot, not per-request
// reconfiguration.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// GCCycle logs one completed mark-and-sweep cycle.
func GCCycle(liveWords, freeWords int, stackOverflowed bool) {
	Logger().Debug("gc cycle complete",
		zap.Int("live_words", liveWords),
		zap.Int("free_words", freeWords),
		zap.Bool("mark_stack_overflowed", stackOverflowed),
	)
}

// AllocationRetry logs an allocation that required a GC cycle to satisfy.
func AllocationRetry(wordSize uint16, satisfied bool) {
	Logger().Debug("allocation retried after gc",
		zap.Uint16("word_size", wordSize),
		zap.Bool("satisfied", satisfied),
	)
}

// InterruptContractViolation logs an allocation attempted while the
// nested interrupt-handler counter is positive.
func InterruptContractViolation(nestedHandlers int) {
	Logger().Warn("allocation attempted inside interrupt handler",
		zap.Int("nested_interrupt_handler", nestedHandlers),
	)
}
