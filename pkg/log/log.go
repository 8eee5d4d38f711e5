package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func InitLog(lvl zap.AtomicLevel) *zap.Logger {
	loggerCfg := &zap.Config{
		Level:    lvl,
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder, EncodeCaller: zapcore.ShortCallerEncoder},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	plain, err := loggerCfg.Build(zap.AddStacktrace(zap.DPanicLevel))
	if err != nil {
		panic(err)
	}

	return plain
}

// ParseLevel maps a configured level string to an atomic level, falling
// back to info on anything unparseable.
func ParseLevel(lvl string) zap.AtomicLevel {
	atomicLvl, err := zap.ParseAtomicLevel(lvl)
	if err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return atomicLvl
}
