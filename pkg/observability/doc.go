// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xrotate: 日志文件轮转，按日历日切换、按大小分卷、按天数清理
//   - xflog: 写入本地文件的纯文本日志器，基于 xrotate
//
// 设计原则：
//   - 轮转器自身不打日志，错误通过回调上报，避免递归写入
//   - 文件命名方案即状态：重启后从目录内容恢复，无需额外元数据
//   - 时钟可注入，轮转行为可离线测试
package observability
