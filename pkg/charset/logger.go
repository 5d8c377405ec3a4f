/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// Logger 是本包对外暴露的最小日志协作者接口（§6.6）。它刻意与
// *slog.Logger 的方法签名重合，调用方可以直接把 pkg/logger.Log() 的
// 返回值传给接受 Logger 的函数，无需适配层；本包自身不导入 log/slog，
// 避免与 pkg/logger 产生任何方向上的依赖耦合。
type Logger interface {
	Debug(msg string, args ...any)
}

// noopLogger 在调用方未提供 Logger 时使用，所有调用均不产生任何效果。
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// resolveLogger 从 Detect/Decode 的可变参数中取出调用方提供的 Logger；
// 未提供或提供了 nil 时回退到 noopLogger，使 Detect/Decode 内部的
// log.Debug 调用永远安全，无需在每个调用点判空。
func resolveLogger(opt []Logger) Logger {
	if len(opt) > 0 && opt[0] != nil {
		return opt[0]
	}
	return noopLogger{}
}
