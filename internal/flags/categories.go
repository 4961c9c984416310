// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package flags

import "github.com/urfave/cli/v2"

const (
	// NodeCategory 是与 Thor 节点连接相关的标志的类别。
	NodeCategory = "NODE"
	// AccountCategory 是与账户和密钥库相关的标志的类别。
	AccountCategory = "ACCOUNT"
	// TransactionCategory 是与交易构造相关的标志的类别。
	TransactionCategory = "TRANSACTION"
	// LoggingCategory 是与 Logging and Debugging 相关的标志的类别。
	LoggingCategory = "LOGGING AND DEBUGGING"
	// MiscCategory 是与 Miscellaneous 相关的标志的类别。
	MiscCategory = "MISC"
)

func init() {
	// 将帮助标志的类别设置为 MiscCategory。
	cli.HelpFlag.(*cli.BoolFlag).Category = MiscCategory
	// 将版本标志的类别设置为 MiscCategory。
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}
