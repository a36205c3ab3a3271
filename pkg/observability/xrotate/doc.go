// Package xrotate 提供日志文件轮转功能。
//
// Rotator 接口定义了轮转器的核心行为（Write/Close/Rotate），所有实现并发安全。
//
// # 当前实现
//
//   - [NewDaily]: 按日历日轮转 + 按大小分卷 + 按天数保留的轮转器，
//     文件命名 <日期>_<序号><扩展名>（如 2024-01-03_0.log），
//     重启后通过目录扫描恢复当前文件状态
//   - [NewSizeOnly]: 基于 lumberjack v2 的固定文件名按大小轮转
//
// # 命名方案
//
// [Layout] 描述 <日期>_<序号><扩展名> 命名方案，并提供目录扫描（Scan）、
// 当前文件选择（Select）和过期清理（Prune）三个纯函数操作，
// 既被 Daily 轮转器使用，也可单独用于运维工具。
//
// # 扩展新实现
//
//  1. 创建新文件实现 Rotator 接口
//  2. 定义独立的 Config 和 Option
//  3. 提供独立的构造函数
//  4. 不修改 Rotator 接口
package xrotate
