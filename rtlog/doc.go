// Package rtlog provides the runtime's structured logger: a package-level
// *zap.Logger, defaulting to a no-op logger so embedding this runtime in
// an ESP32 image costs nothing unless a host opts in, exactly the shape
// of the teacher's engine.Logger().
package rtlog
