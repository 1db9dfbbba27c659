// Package config loads the warpsync CLI configuration from TOML.
//
// Lookup order: the --config flag, ~/.config/warpsync/config.toml, then
// ./warpsync.toml. A missing file is not an error; defaults apply. Values are
// normalized (trimmed, lower-cased) and validated before use, and
// AlignOptions converts them into dtw options.
package config
