// Package xfile 提供日志目录相关的文件系统工具。
//
// 本包是 logkit 各组件共享的基础层，提供三类能力：
//
//   - SanitizePath: 路径格式净化（空路径、空字节、路径穿越、目录路径）
//   - EnsureDir / EnsureDirWithPerm: 幂等的目录创建
//   - BaseDir: 解析当前平台的可写基础目录
//
// # 路径穿越检测
//
// 路径穿越检测使用精确的路径段匹配，只有 ".." 作为独立路径段时才被视为
// 穿越。以 ".." 开头的合法文件名（如 "..config"）不会被误判。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.BaseDir("myapp")
//	if errors.Is(err, xfile.ErrNoBaseDir) {
//	    // 平台不支持，无法定位可写目录
//	}
package xfile
