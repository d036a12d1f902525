// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the traductor CLI, IPC server and HTTP API.

Traductor translates words and phrases between Spanish and Mexican indigenous
languages (Mixteco, Náhuatl, Totonaco, Zapoteco, Maya, Otomi) using plain
dictionary datasets. Every dataset is a list of records holding a Spanish field
and one indigenous-language field; values may list variants separated by commas.

# Usage

Translate a phrase:

	traductor translate -l nahuatl "el perro come"

Translate from the indigenous language back into Spanish:

	traductor translate -l nahuatl -r ind chichi

Start the interactive prompt:

	traductor repl -l maya

Serve msgpack requests on stdin/stdout, or JSON over HTTP:

	traductor serve -l nahuatl
	traductor serve --http --addr 127.0.0.1:8080

# Datasets

Datasets are looked up in dataset.dir, relative to the executable or the
working directory, and may be JSON, YAML, CSV or msgpack. A --lang value that
is not a catalogue name is used as a path or URL. Every successful fetch is
cached in a bbolt file so a dataset served from a URL keeps working offline.

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first run:

	[translator]
	max_combinations = 5
	top_n = 5
	min_score = 0.2
	locale = "en"

	[server]
	max_query_len = 500
	max_completions = 32
	http_addr = "127.0.0.1:8080"

	[dataset]
	dir = "data"
	default_language = ""
	cache_path = ""
	watch = false

	[cli]
	default_direction = "es"
	color = true

	[[languages]]
	name = "nahuatl"
	label = "Náhuatl"
	file = "nahuatl.JSON"

With dataset.watch enabled, serve and repl reload the dataset when its file changes.
*/
package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/traductor/cmd/traductor/cmd"
	"github.com/bastiangx/traductor/pkg/translate"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", translate.Message(err))
		os.Exit(1)
	}
}
