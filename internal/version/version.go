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

// Package version reports the version of the thorsdk binary.
package version

import (
	"fmt"
	"runtime"

	"github.com/vechain/thor-sdk-go/version"
)

// ourPath is the module path recorded in the build info of thorsdk.
const ourPath = "github.com/vechain/thor-sdk-go"

// Semantic is the major.minor.patch version of the SDK.
var Semantic = fmt.Sprintf("%d.%d.%d", version.Major, version.Minor, version.Patch)

// WithMeta is Semantic followed by the release tag, e.g. 0.3.0-unstable.
var WithMeta = func() string {
	if version.Meta == "" {
		return Semantic
	}
	return Semantic + "-" + version.Meta
}()

// WithCommit returns the version printed by --version. It appends the short
// commit hash, and the commit date for builds that are not tagged stable.
func WithCommit(rev Revision) string {
	vsn := WithMeta
	if len(rev.Commit) >= 8 {
		vsn += "-" + rev.Short()
	}
	if version.Meta != "stable" && rev.Date != "" {
		vsn += "-" + rev.Date
	}
	return vsn
}

// Info returns a multi-line description of the running binary, as printed by
// the version command.
// Info 返回当前可执行文件的多行版本描述。
func Info(name string) string {
	rev, _ := VCS()
	s := fmt.Sprintf("%s\nVersion: %s\n", name, WithMeta)
	if rev.Commit != "" {
		s += fmt.Sprintf("Git Commit: %s\n", rev.Commit)
		if rev.Date != "" {
			s += fmt.Sprintf("Git Commit Date: %s\n", rev.Date)
		}
		if rev.Dirty {
			s += "Git Tree: dirty\n"
		}
	}
	s += fmt.Sprintf("Architecture: %s\nGo Version: %s\nOperating System: %s\n", runtime.GOARCH, runtime.Version(), runtime.GOOS)
	return s
}
