// Copyright 2016-2025 Fraunhofer AISEC
//
// SPDX-License-Identifier: Apache-2.0
//
//                                 /$$$$$$  /$$                                     /$$
//                               /$$__  $$|__/                                    | $$
//   /$$$$$$$  /$$$$$$  /$$$$$$$ | $$  \__/ /$$  /$$$$$$  /$$$$$$/$$$$   /$$$$$$  /$$$$$$    /$$$$$$
//  /$$_____/ /$$__  $$| $$__  $$| $$$$    | $$ /$$__  $$| $$_  $$_  $$ |____  $$|_  $$_/   /$$__  $$
// | $$      | $$  \ $$| $$  \ $$| $$_/    | $$| $$      | $$ | $$ | $$ /$$__  $$  | $$ /$$| $$_____/
// |  $$$$$$$|  $$$$$$/| $$  | $$| $$      | $$| $$      | $$ | $$ | $$|  $$$$$$$  |  $$$$/|  $$$$$$$
// \_______/ \______/ |__/  |__/|__/      |__/|__/      |__/ |__/ |__/ \_______/   \___/   \_______/
//
// This file is part of Confirmate Core.

// Package climd builds the CLI command tree for the materialization core: loading an fmf
// tree, resolving a context and plugin-option overrides, running the pipeline, parsing and
// evaluating hardware constraints, and merging/reporting results (spec §6 external interfaces).
package climd

import (
	"os"
	"regexp"
	"strings"

	"github.com/fmf-tmt/tmtcore/internal/materialize"
	"github.com/fmf-tmt/tmtcore/internal/strcase"
)

// pluginOptionPattern matches the PLUGIN_<STEP>_<PLUGIN>_<OPTION> environment variables of
// spec §6: step and plugin are opaque to the core (it only cares about the option name, which
// becomes the overridden schema key).
var pluginOptionPattern = regexp.MustCompile(`^PLUGIN_[A-Z0-9]+_[A-Z0-9]+_(.+)$`)

// EnvOverrides scans the process environment for PLUGIN_<STEP>_<PLUGIN>_<OPTION> variables and
// returns them as materialize.Overrides keyed by schema key name. OPTION segments are
// conventionally SCREAMING_SNAKE_CASE or CamelCase; both normalize to the lower-snake-case form
// the schema registry uses.
func EnvOverrides() materialize.Overrides {
	out := materialize.Overrides{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m := pluginOptionPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		out[optionToKey(m[1])] = value
	}
	return out
}

// optionToKey normalizes a PLUGIN_..._<OPTION> segment into the lower-snake-case form used by
// schema.Registry keys, e.g. "FRAMEWORK" -> "framework", "DataPath" -> "data_path".
func optionToKey(option string) string {
	if strings.ToUpper(option) == option {
		return strings.ToLower(option)
	}
	return strcase.CamelCaseToSnakeCase(option)
}

// MergeOverrides layers CLI-supplied overrides (cliOverrides) on top of environment-resolved
// ones, implementing the "CLI > env" half of spec §6's precedence chain; materialize.Tree applies
// the result underneath each node's own fmf data, implementing the "... > fmf >
// built-in default" half.
func MergeOverrides(env, cli materialize.Overrides) materialize.Overrides {
	out := make(materialize.Overrides, len(env)+len(cli))
	for k, v := range env {
		out[k] = v
	}
	for k, v := range cli {
		out[k] = v
	}
	return out
}
