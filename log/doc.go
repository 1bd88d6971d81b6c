// Package log provides the leveled logging interface shared by the RAG
// components in this repository.
//
// Components accept a Logger through their option lists and fall back to the
// package-level logger when none is given, so logging can be enabled globally
// without threading logger objects through every constructor.
//
// # Log Levels
//
// Five levels, in order of increasing severity:
//
//   - LogLevelDebug: per-request and per-chunk detail
//   - LogLevelInfo: pipeline progress (ingestion counts, retrieval hits)
//   - LogLevelWarn: recoverable problems
//   - LogLevelError: failures surfaced to the caller
//   - LogLevelNone: disables all output
//
// # Usage
//
//	logger := log.NewDefaultLogger(log.LogLevelInfo)
//	logger.Info("ingested %d chunks", n)
//	logger.Debug("query embedding took %v", elapsed)
//
// Or globally:
//
//	log.SetLogLevel(log.LogLevelDebug)
//	log.Debug("retrieval scores: %v", scores)
//
// # golog Integration
//
// A minimal wrapper adapts github.com/kataras/golog:
//
//	glogger := golog.New()
//	glogger.SetPrefix("[ragchat] ")
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LogLevelDebug)
//
// SetLevel on the wrapper mirrors the level onto the golog instance, so both
// filters agree.
//
// Any type implementing Debug/Info/Warn/Error with printf-style signatures
// satisfies Logger and can be dropped in.
package log
