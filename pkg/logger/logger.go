// Package logger 对 zap 的薄封装，提供包级日志函数。
package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop()

// Init 按运行模式初始化全局 logger（debug → 开发配置，其余 → 生产配置）
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "debug" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

// ReplaceGlobal 注入外部构造的 logger（测试用）
func ReplaceGlobal(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// L 返回底层 *zap.Logger
func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

// Sync 进程退出前冲刷缓冲
func Sync() { _ = log.Sync() }
