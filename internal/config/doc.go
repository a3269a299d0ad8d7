// Package config provides user configuration for smucheck.
//
// Configuration is optional. Values are read from a YAML file, then
// overridden by SMUCHECK_* environment variables, then defaulted and
// validated.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/smucheck/config.yaml or $HOME/.config/smucheck/config.yaml
//   - macOS: $HOME/.config/smucheck/config.yaml
//   - Windows: %LOCALAPPDATA%\smucheck\config.yaml
//
// # Example File
//
//	scan:
//	  read_chunk_size: 4096
//	  decode_buffer_size: 8192
//	  candidate_offsets: [0x30, 0x3C]
//	  max_chipset_entries: 2
//	output:
//	  width: 75
//
// # Usage Example
//
//	cfg, err := config.Load("") // default location
//	if err != nil {
//	    return err
//	}
package config
