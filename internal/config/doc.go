// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the oggstream command.
//
// Example file:
//
//	decoder:
//	  read_size: 4096
//	logging:
//	  level: debug
//	  format: json
//	metrics:
//	  address: ":9090"
//
// Keys left out keep their Default values. Environment variables with the
// OGGSTREAM_ prefix override the file through Config.ApplyEnv.
package config
