// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xpgcidr: PostgreSQL cidr 类型的线格式编解码与 database/sql 适配
//
// 设计原则：
//   - 适配层只做编解码和类型转换，不持有连接
//   - 严格构造：损坏的存储数据在读取时立即报错，不静默修正
package storage
