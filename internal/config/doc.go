// Package config loads application configuration from an optional YAML
// file overlaid by SURVEYCLEAN_* environment variables, with struct-tag
// validation of the result.
package config
