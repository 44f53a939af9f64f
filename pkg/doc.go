// Package pkg provides the core libraries for tabs, an upstream release
// tracker.
//
// # Overview
//
// tabs fetches the releases page of every tracked package, extracts the
// latest version with a CSS selector, and compares it with the version
// recorded last time. The pkg directory is organized into three areas:
//
//  1. Resolution - [selector], [httputil], [extract], [version], [tracker]
//  2. Records - [baseline], [io]
//  3. Infrastructure - [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of a run:
//
//	package list (tabs.json)
//	         ↓
//	    [io] package (decode package descriptors)
//	         ↓
//	    [tracker] package, one pipeline per package:
//	        [selector] rule → [httputil] fetch → [extract] text → [version] normalize
//	         ↓
//	    [baseline] package (classify against the last run, write back)
//	         ↓
//	    console lines and an optional JSON report
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tabs/pkg/baseline"
//	    "github.com/matzehuels/tabs/pkg/httputil"
//	    "github.com/matzehuels/tabs/pkg/tracker"
//	)
//
//	client := httputil.NewClient(nil, 0)
//	t := tracker.New(client, nil, tracker.Options{})
//	outcomes := t.ResolveAll(ctx, []tracker.Package{
//	    {Name: "bash", Upstream: "https://ftp.gnu.org/gnu/bash/?C=M;O=D"},
//	})
//
//	store := baseline.NewFileStore("versions.txt")
//	base, _ := store.Load(ctx)
//	results := baseline.DiffAll(outcomes, base)
//	_ = store.Save(ctx, baseline.Apply(base, results))
//
// [selector]: github.com/matzehuels/tabs/pkg/selector
// [httputil]: github.com/matzehuels/tabs/pkg/httputil
// [extract]: github.com/matzehuels/tabs/pkg/extract
// [version]: github.com/matzehuels/tabs/pkg/version
// [tracker]: github.com/matzehuels/tabs/pkg/tracker
// [baseline]: github.com/matzehuels/tabs/pkg/baseline
// [io]: github.com/matzehuels/tabs/pkg/io
// [cache]: github.com/matzehuels/tabs/pkg/cache
// [errors]: github.com/matzehuels/tabs/pkg/errors
// [observability]: github.com/matzehuels/tabs/pkg/observability
// [buildinfo]: github.com/matzehuels/tabs/pkg/buildinfo
package pkg
