// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based application configuration storage
//   - ProviderStore: TOML-based provider configuration with built-in defaults
package file
