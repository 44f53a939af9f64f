// Package io reads tracked-package lists and writes run reports.
//
// # Package lists
//
// The format is chosen by file extension. JSON is the historical format:
//
//	[
//	  {"name": "bash", "url": "https://ftp.gnu.org/gnu/bash/?C=M;O=D"},
//	  {"name": "neovim", "url": "https://github.com/neovim/neovim/tags"},
//	  {"name": "st", "url": "https://dl.suckless.org/st/", "selector": "tr:nth-last-child(2) a"}
//	]
//
// TOML uses [[package]] tables and YAML a top-level sequence, both with the
// same keys. "upstream" is accepted as an alias of "url". Every entry needs
// a name; an entry without a URL is kept and fails at resolution time.
//
// # Reports
//
// [WriteReport] serializes the classified results of a run as JSON for
// consumption by other tools (CI annotations, dashboards).
package io
