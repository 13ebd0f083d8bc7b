// Package log 提供进程级 zap logger。
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
}

// Logger 返回当前 logger。
func Logger() *zap.Logger {
	return logger
}

// SetLogger 重新配置 logger：debug 时使用控制台编码并输出 Debug 级别，否则输出 JSON Info 级别。
func SetLogger(debug bool) {
	var (
		encoder zapcore.Encoder
		level   zapcore.LevelEnabler
	)
	timeEncoder := zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.999999")
	if debug {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = timeEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
		level = zap.DebugLevel
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = timeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
		level = zap.InfoLevel
	}
	logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level))
}

// CloseLogger 关闭日志输出，测试中使用。
func CloseLogger() {
	logger = zap.NewNop()
}
