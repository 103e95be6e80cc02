package sqlbuilder

import (
	"fmt"

	"go.uber.org/zap"
)

type LogLevel int

const (
	LogLevelDev LogLevel = iota
	LogLevelProd
)

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type zapLogger struct {
	l *zap.SugaredLogger
}

func newZapLogger(env LogLevel) (*zapLogger, error) {
	var cfg zap.Config
	switch env {
	case LogLevelDev:
		cfg = zap.NewDevelopmentConfig()
	case LogLevelProd:
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("log level should be either LogLevelDev or LogLevelProd")
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{l.Sugar()}, nil
}

// NewZapLogger adapts an existing zap logger.
func NewZapLogger(l *zap.Logger) Logger {
	return &zapLogger{l.Sugar()}
}

// NopLogger discards everything.
func NopLogger() Logger {
	return &zapLogger{zap.NewNop().Sugar()}
}

func (z *zapLogger) Debugf(format string, args ...any) {
	z.l.Debugf("[DEBUG] "+format, args...)
}

func (z *zapLogger) Warnf(format string, args ...any) {
	z.l.Warnf("[WARN] "+format, args...)
}

func (z *zapLogger) Errorf(format string, args ...any) {
	z.l.Errorf("[ERROR] "+format, args...)
}

func (z *zapLogger) Infof(format string, args ...any) {
	z.l.Infof("[INFO] "+format, args...)
}
