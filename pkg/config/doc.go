// Package config loads per-package configuration structs from environment
// variables, with optional .env support for local development. Every
// package in the engine declares its own Config with `env` tags; this
// package only does the parsing.
package config
