// Package config provides configuration types for the engine bridge.
package config
