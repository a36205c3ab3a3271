// Package xflog 提供写入本地文件的纯文本日志器。
//
// # 核心功能
//
//   - 五档固定级别（DEBUG/INFO/WARNING/ERROR/VERBOSE），按集合成员过滤
//   - 输出到按日历日轮转、按大小分卷、按天数自动清理的日志文件
//     （底层为 xrotate 的 Daily 轮转器）
//   - 惰性初始化：构造不触碰文件系统，首次写入时解析平台基础目录、
//     创建 logs 子目录并恢复轮转状态
//   - 声明式配置（YAML/JSON，经 koanf 解析）
//
// # 行格式
//
// 每条记录一行：
//
//	<时间戳> [<tag->]<级别>]:<消息>
//
// tag 可选；错误文本与堆栈文本（如提供）各占后续独立行。
// 记录只追加，从不改写。
//
// # 状态机
//
// Uninitialized → Ready；Close 只释放文件句柄，之后的调用返回 ErrClosed。
// 首次 Log 调用解析平台可写基础目录（失败是致命错误，向调用方抛出，
// 且不留下半就绪状态），之后的每次 Log 只做级别过滤、格式化和追加。
// 整个"检查日期 → 必要时轮转 → 格式化 → 追加"序列相对于同一实例上的
// 其他 Log 调用是原子的。
//
// # 错误语义
//
// Log 调用的失败（目录创建、打开、追加、刷盘）原样返回，内部不重试；
// 日志永远不应让宿主应用的主流程崩溃，调用方按尽力而为处理即可。
// 清理阶段的单文件删除失败通过 OnError 回调上报并继续。
//
// # 创建 Logger
//
//	logger, err := xflog.New(
//	    xflog.WithAppName("myapp"),
//	    xflog.WithRetentionDays(7),
//	    xflog.WithMaxSize(5),
//	)
//	if err != nil { ... }
//	defer logger.Close()
//
//	_ = logger.Info("service started")
//	_ = logger.Error("request failed", xflog.WithTag("http"), xflog.WithError(err))
package xflog
