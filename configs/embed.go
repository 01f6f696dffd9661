// Package configs embeds the annotated configuration template written by
// `phonebench config init`.
package configs

import _ "embed"

// ConfigTemplate is the commented example configuration.
//
//go:embed phonebench.example.yaml
var ConfigTemplate string
