// Package config loads, validates and saves the YAML settings shared by the
// door server and the door client.
package config
