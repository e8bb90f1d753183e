// Package configs provides the embedded configuration template for tocgen.
//
// The template is embedded at build time so `tocgen init` works the same for
// source builds and binary releases. Its values mirror the defaults in
// internal/config NewConfig(); a test in internal/config keeps the two in
// sync.
package configs

import _ "embed"

// ProjectConfigTemplate is the template written by `tocgen init` as
// .tocgen.yaml in the docs directory.
//
//go:embed tocgen.example.yaml
var ProjectConfigTemplate string
