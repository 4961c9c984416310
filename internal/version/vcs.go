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


package version

import (
	"runtime/debug"
	"sync"
	"time"
)

// Set by the linker for release builds, e.g.
//
//	-ldflags "-X github.com/vechain/thor-sdk-go/internal/version.gitCommit=<hash>"
var gitCommit, gitDate string

// Revision is the source control state a binary was built from.
// Revision 表示构建二进制文件时的源码版本状态。
type Revision struct {
	Commit string // full commit hash
	Date   string // commit date as YYYYMMDD
	Dirty  bool   // local modifications
}

// Short returns the first eight characters of the commit hash.
func (r Revision) Short() string {
	if len(r.Commit) < 8 {
		return r.Commit
	}
	return r.Commit[:8]
}

var readRevision = sync.OnceValues(func() (Revision, bool) {
	if gitCommit != "" {
		return Revision{Commit: gitCommit, Date: gitDate}, true
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path != ourPath {
		return Revision{}, false
	}
	return revisionOf(info)
})

// VCS returns the revision of the running binary. The boolean is false when
// neither the linker nor the go tool recorded one, e.g. under go test or when
// thorsdk is built as a dependency of another module.
func VCS() (Revision, bool) {
	return readRevision()
}

// revisionOf reads the vcs.* settings the go tool embeds since go 1.18.
func revisionOf(info *debug.BuildInfo) (Revision, bool) {
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	r := Revision{
		Commit: settings["vcs.revision"],
		Dirty:  settings["vcs.modified"] == "true",
	}
	if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
		r.Date = t.UTC().Format("20060102")
	}
	return r, r.Commit != "" && r.Date != ""
}
